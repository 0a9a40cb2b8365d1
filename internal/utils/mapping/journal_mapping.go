package mapping

import (
	"github.com/branchbooks/ledger_backend/internal/core/domain"
	"github.com/branchbooks/ledger_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:      d.EntryID,
		ReferenceID:  d.ReferenceID,
		EntryDate:    d.EntryDate,
		CurrencyCode: d.CurrencyCode,
		TotalAmount:  d.TotalAmount,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.ReferenceType != nil {
		refType := string(*d.ReferenceType)
		m.ReferenceType = &refType
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:      m.EntryID,
		ReferenceID:  m.ReferenceID,
		EntryDate:    m.EntryDate,
		CurrencyCode: m.CurrencyCode,
		TotalAmount:  m.TotalAmount,
		IsBalanced:   true, // persisted entries passed validation
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.ReferenceType != nil {
		refType := domain.ReferenceType(*m.ReferenceType)
		d.ReferenceType = &refType
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
