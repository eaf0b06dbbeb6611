package xenditrepo

type CreateInvoiceReq struct {
	ExternalID  string
	Amount      int64
	PayerEmail  string
	Description string
	ExpirySec   int
}

type CreateInvoiceResp struct {
	InvoiceID  string
	InvoiceURL string
	ExpiresAt  string
}

type Repo interface {
	CreateInvoice(req CreateInvoiceReq) (*CreateInvoiceResp, error)
	VerifyCallbackToken(header string) error
}
