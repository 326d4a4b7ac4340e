package salary

import "context"

type SalaryService interface {
	Create(ctx context.Context, req CreateRequest) (RecordResponse, error)
	GetByID(ctx context.Context, id string) (RecordResponse, error)
	List(ctx context.Context, filter Filter) ([]RecordResponse, int64, error)
	ListMine(ctx context.Context) ([]RecordResponse, error)
	Update(ctx context.Context, req UpdateRequest) (RecordResponse, error)
	Delete(ctx context.Context, id string) error
}
