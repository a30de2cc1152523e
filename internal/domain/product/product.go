package product

// FinancialProduct is the catalog entity managed by the admin tool.
// The id is chosen by the user on creation and immutable afterwards;
// uniqueness is enforced by the remote API.
type FinancialProduct struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Logo         string `json:"logo"`
	DateRelease  Date   `json:"date_release"`
	DateRevision Date   `json:"date_revision"`
}

// MutationResult is the response body of create/update calls. The remote
// API signals success through a literal message, not through the status
// code alone.
type MutationResult struct {
	Message string            `json:"message"`
	Data    *FinancialProduct `json:"data,omitempty"`
}

const (
	MsgCreated = "Product added successfully"
	MsgUpdated = "Product updated successfully"
)
