package shared

import "context"

// DocumentNumberService issues unique, human-legible document numbers
// such as "INV-000042". Implementations must be safe to call inside the
// transaction that creates the numbered document: the number is only
// consumed if that transaction commits.
type DocumentNumberService interface {
	NextDocumentNumber(ctx context.Context, prefix string) (string, error)
}
