package ticket

import "errors"

var (
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrTicketForbidden    = errors.New("ticket belongs to another company")
	ErrTicketNumberExists = errors.New("ticket number already exists")
)
