package salary

import "time"

// Reconcile applies a partial update to an existing salary record and
// returns the merged result. It is a pure function of its inputs; reading
// the current record, version checking and persistence are the caller's
// concern.
//
// The bonus field is delta-preserving: totalPay and netPay move by the
// signed difference between the patched and stored bonus, so manually
// entered adjustments on either total survive a bonus correction instead of
// being recomputed away. Every other patched field replaces the stored
// value outright, and replacement happens after the bonus arithmetic: an
// explicit totalPay or netPay in the same patch wins over the derived
// value. That ordering is observable behavior; do not reorder.
func Reconcile(existing Record, patch UpdateRequest) Record {
	out := existing

	newBonus := existing.Bonus
	if patch.Bonus != nil {
		newBonus = *patch.Bonus
	}
	if delta := newBonus.Sub(existing.Bonus); !delta.IsZero() {
		out.TotalPay = out.TotalPay.Add(delta)
		out.NetPay = out.NetPay.Add(delta)
	}
	out.Bonus = newBonus

	if patch.EmployeeID != nil {
		out.EmployeeID = *patch.EmployeeID
	}
	if t, ok := parseDate(patch.PeriodStart); ok {
		out.PeriodStart = t
	}
	if t, ok := parseDate(patch.PeriodEnd); ok {
		out.PeriodEnd = t
	}
	if patch.TotalHours != nil {
		out.TotalHours = *patch.TotalHours
	}
	if patch.TotalPay != nil {
		out.TotalPay = *patch.TotalPay
	}
	if patch.TaxDeduction != nil {
		out.TaxDeduction = *patch.TaxDeduction
	}
	if patch.OtherDeductions != nil {
		out.OtherDeductions = *patch.OtherDeductions
	}
	if patch.NetPay != nil {
		out.NetPay = *patch.NetPay
	}
	if patch.Notes != nil {
		out.Notes = patch.Notes
	}
	if patch.Status != nil {
		out.Status = *patch.Status
	}

	return out
}

func parseDate(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		// Validate() rejects malformed dates before Reconcile runs
		return time.Time{}, false
	}
	return t, true
}
