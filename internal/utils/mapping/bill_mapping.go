package mapping

import (
	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	"github.com/SscSPs/personal_finance_app/internal/models"
)

// ToModelBill converts a domain Bill to a model Bill
func ToModelBill(d domain.Bill) models.Bill {
	return models.Bill{
		BillID:       d.BillID,
		UserID:       d.UserID,
		Type:         string(d.Type),
		Amount:       d.Amount,
		Category:     d.Category,
		Description:  d.Description,
		DueDate:      d.DueDate,
		Status:       string(d.Status),
		PaidAt:       d.PaidAt,
		RecurrenceID: nullableString(d.RecurrenceID),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBill converts a model Bill to a domain Bill
func ToDomainBill(m models.Bill) domain.Bill {
	return domain.Bill{
		BillID:       m.BillID,
		UserID:       m.UserID,
		Type:         domain.BillType(m.Type),
		Amount:       m.Amount,
		Category:     m.Category,
		Description:  m.Description,
		DueDate:      m.DueDate,
		Status:       domain.BillStatus(m.Status),
		PaidAt:       m.PaidAt,
		RecurrenceID: derefString(m.RecurrenceID),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBillSlice converts a slice of model Bills to domain Bills
func ToDomainBillSlice(ms []models.Bill) []domain.Bill {
	ds := make([]domain.Bill, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBill(m)
	}
	return ds
}

// ToModelBillRecurrence converts a domain BillRecurrence to a model BillRecurrence
func ToModelBillRecurrence(d domain.BillRecurrence) models.BillRecurrence {
	return models.BillRecurrence{
		RecurrenceID: d.RecurrenceID,
		UserID:       d.UserID,
		Type:         string(d.Type),
		Amount:       d.Amount,
		Category:     d.Category,
		Description:  d.Description,
		Frequency:    string(d.Frequency),
		Interval:     d.Interval,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		NextDueDate:  d.NextDueDate,
		Active:       d.Active,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBillRecurrence converts a model BillRecurrence to a domain BillRecurrence
func ToDomainBillRecurrence(m models.BillRecurrence) domain.BillRecurrence {
	return domain.BillRecurrence{
		RecurrenceID: m.RecurrenceID,
		UserID:       m.UserID,
		Type:         domain.BillType(m.Type),
		Amount:       m.Amount,
		Category:     m.Category,
		Description:  m.Description,
		Frequency:    domain.Frequency(m.Frequency),
		Interval:     m.Interval,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		NextDueDate:  m.NextDueDate,
		Active:       m.Active,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBillRecurrenceSlice converts a slice of model BillRecurrences to domain BillRecurrences
func ToDomainBillRecurrenceSlice(ms []models.BillRecurrence) []domain.BillRecurrence {
	ds := make([]domain.BillRecurrence, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBillRecurrence(m)
	}
	return ds
}
