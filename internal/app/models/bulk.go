package models

// BulkWithdrawalFailure is one enrollment the bulk processor could not withdraw
type BulkWithdrawalFailure struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// BulkWithdrawalResult accumulates per-item outcomes in input order
type BulkWithdrawalResult struct {
	Succeeded []int64                 `json:"success"`
	Failed    []BulkWithdrawalFailure `json:"failed"`
}

// NewBulkWithdrawalResult returns an empty result with non-nil lists
func NewBulkWithdrawalResult() *BulkWithdrawalResult {
	return &BulkWithdrawalResult{
		Succeeded: []int64{},
		Failed:    []BulkWithdrawalFailure{},
	}
}

// Succeed records a withdrawn enrollment
func (r *BulkWithdrawalResult) Succeed(id int64) {
	r.Succeeded = append(r.Succeeded, id)
}

// Fail records a skipped enrollment
func (r *BulkWithdrawalResult) Fail(id int64, name, message string) {
	r.Failed = append(r.Failed, BulkWithdrawalFailure{ID: id, Name: name, Error: message})
}

// Total is the number of processed items
func (r *BulkWithdrawalResult) Total() int {
	return len(r.Succeeded) + len(r.Failed)
}
