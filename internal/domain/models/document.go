package models

import "time"

// DocumentStatus is the canonical document state vocabulary. The signature
// provider's raw vocabulary is wider; the lifecycle service normalizes it
// onto these values, passing unrecognized values through unchanged.
type DocumentStatus string

const (
	DocumentStatusDraft    DocumentStatus = "draft"
	DocumentStatusSent     DocumentStatus = "sent"
	DocumentStatusSigned   DocumentStatus = "signed"
	DocumentStatusCanceled DocumentStatus = "canceled"
)

// SignerStatus is the canonical signer state vocabulary.
type SignerStatus string

const (
	SignerStatusPending  SignerStatus = "pending"
	SignerStatusSigned   SignerStatus = "signed"
	SignerStatusRejected SignerStatus = "rejected"
)

// Document is a signable document owned by a company. OpenID and Token stay
// zero-valued until the document has been handed to the signature provider.
type Document struct {
	ID            string         `json:"id" db:"id"`
	CompanyID     string         `json:"company_id" db:"company_id"`
	OpenID        int64          `json:"open_id" db:"open_id"`
	Token         string         `json:"token" db:"token"`
	Name          string         `json:"name" db:"name"`
	Status        DocumentStatus `json:"status" db:"status"`
	CreatedBy     string         `json:"created_by" db:"created_by"`
	ExternalID    string         `json:"external_id" db:"external_id"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	LastUpdatedAt time.Time      `json:"last_updated_at" db:"last_updated_at"`

	Company *Company         `json:"company,omitempty"`
	Signers []Signer         `json:"signers,omitempty"`
	Content *DocumentContent `json:"content,omitempty"`
}

// Signer is a party expected to sign a document. Email is the natural join
// key with the signature provider, which does not echo back local ids.
type Signer struct {
	ID         string       `json:"id" db:"id"`
	DocumentID string       `json:"document_id" db:"document_id"`
	Name       string       `json:"name" db:"name"`
	Email      string       `json:"email" db:"email"`
	Token      string       `json:"token" db:"token"`
	Status     SignerStatus `json:"status" db:"status"`
	ExternalID string       `json:"external_id" db:"external_id"`
}
