package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"zapflow/internal/domain"
	"zapflow/internal/domain/models"
	"zapflow/internal/domain/repositories"
)

const documentColumns = "id, company_id, open_id, token, name, status, created_by, external_id, created_at, last_updated_at"

// PostgresDocumentRepository implements the DocumentRepository interface.
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(config *RepositoryConfig) repositories.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// CreateWithSigners creates the document and its signers. Callers wrap this
// in a transaction so a failed signer insert leaves no partial document.
func (r *PostgresDocumentRepository) CreateWithSigners(ctx context.Context, params repositories.CreateDocumentParams) (*models.Document, error) {
	executor := GetExecutor(ctx, r.pool)

	var exists bool
	err := executor.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, params.CompanyID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check company: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("company %s: %w", params.CompanyID, domain.ErrNotFound)
	}

	query := fmt.Sprintf(`
		INSERT INTO documents (company_id, name, created_by, external_id)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, documentColumns)

	var doc models.Document
	err = executor.QueryRow(ctx, query,
		params.CompanyID,
		params.Name,
		params.CreatedBy,
		params.ExternalID,
	).Scan(docFields(&doc)...)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	if err := r.insertSigners(ctx, doc.ID, params.Signers); err != nil {
		return nil, err
	}

	return r.GetWithSigners(ctx, doc.ID)
}

// GetWithSigners loads the document with its company, signers and content
// eagerly attached.
func (r *PostgresDocumentRepository) GetWithSigners(ctx context.Context, id string) (*models.Document, error) {
	executor := GetExecutor(ctx, r.pool)

	query := fmt.Sprintf(`
		SELECT %s FROM documents WHERE id = $1
	`, documentColumns)

	var doc models.Document
	err := executor.QueryRow(ctx, query, id).Scan(docFields(&doc)...)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get document: %w", err)
	}

	var company models.Company
	err = executor.QueryRow(ctx, `
		SELECT id, name, api_token, created_at, last_updated_at
		FROM companies WHERE id = $1
	`, doc.CompanyID).Scan(
		&company.ID,
		&company.Name,
		&company.APIToken,
		&company.CreatedAt,
		&company.LastUpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get document company: %w", err)
	}
	doc.Company = &company

	signers, err := r.listSigners(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	doc.Signers = signers

	content, err := r.GetContent(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	doc.Content = content

	return &doc, nil
}

func (r *PostgresDocumentRepository) List(ctx context.Context) ([]models.Document, error) {
	executor := GetExecutor(ctx, r.pool)

	query := fmt.Sprintf(`
		SELECT %s FROM documents ORDER BY created_at DESC
	`, documentColumns)

	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(docFields(&doc)...); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range docs {
		signers, err := r.listSigners(ctx, docs[i].ID)
		if err != nil {
			return nil, err
		}
		docs[i].Signers = signers
	}

	return docs, nil
}

// SaveFields builds an UPDATE from the non-nil fields of the typed update.
func (r *PostgresDocumentRepository) SaveFields(ctx context.Context, id string, upd repositories.DocumentUpdate) (*models.Document, error) {
	sets := []string{}
	args := []interface{}{id}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.CreatedBy != nil {
		add("created_by", *upd.CreatedBy)
	}
	if upd.ExternalID != nil {
		add("external_id", *upd.ExternalID)
	}
	if upd.OpenID != nil {
		add("open_id", *upd.OpenID)
	}
	if upd.Token != nil {
		add("token", *upd.Token)
	}
	if upd.Status != nil {
		add("status", string(*upd.Status))
	}

	if len(sets) == 0 {
		return r.GetWithSigners(ctx, id)
	}
	sets = append(sets, "last_updated_at = now()")

	query := fmt.Sprintf(`
		UPDATE documents SET %s WHERE id = $1 RETURNING %s
	`, strings.Join(sets, ", "), documentColumns)

	var doc models.Document
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, args...).Scan(docFields(&doc)...)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("save document fields: %w", err)
	}

	return &doc, nil
}

func (r *PostgresDocumentRepository) Delete(ctx context.Context, id string) error {
	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ReplaceSigners swaps the whole signer set. Callers run this inside a
// transaction; the service layer rejects empty replacements before it gets
// here, but the guard is kept so the invariant holds for every caller.
func (r *PostgresDocumentRepository) ReplaceSigners(ctx context.Context, documentID string, signers []repositories.NewSigner) error {
	if len(signers) == 0 {
		return fmt.Errorf("signer replacement cannot be empty: %w", domain.ErrValidation)
	}

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, `DELETE FROM signers WHERE document_id = $1`, documentID); err != nil {
		return fmt.Errorf("delete signers: %w", err)
	}

	return r.insertSigners(ctx, documentID, signers)
}

// UpdateSignerByEmail applies the update to the signer matched
// case-insensitively by email. A miss returns (false, nil).
func (r *PostgresDocumentRepository) UpdateSignerByEmail(ctx context.Context, documentID, email string, upd repositories.SignerUpdate) (bool, error) {
	sets := []string{}
	args := []interface{}{documentID, email}

	if upd.Status != nil {
		args = append(args, string(*upd.Status))
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if upd.Token != nil {
		args = append(args, *upd.Token)
		sets = append(sets, fmt.Sprintf("token = $%d", len(args)))
	}
	if len(sets) == 0 {
		return false, nil
	}

	query := fmt.Sprintf(`
		UPDATE signers SET %s
		WHERE document_id = $1 AND LOWER(email) = LOWER($2)
	`, strings.Join(sets, ", "))

	executor := GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update signer by email: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// UpsertContent writes both payload columns from the content struct, so the
// inactive one is always cleared.
func (r *PostgresDocumentRepository) UpsertContent(ctx context.Context, documentID string, content *models.DocumentContent) (*models.DocumentContent, error) {
	query := `
		INSERT INTO document_contents (document_id, content_type, markdown_text, pdf_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (document_id) DO UPDATE SET
			content_type = EXCLUDED.content_type,
			markdown_text = EXCLUDED.markdown_text,
			pdf_url = EXCLUDED.pdf_url
		RETURNING document_id, content_type, markdown_text, pdf_url
	`

	var saved models.DocumentContent
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		documentID,
		string(content.ContentType),
		content.MarkdownText,
		content.PDFURL,
	).Scan(&saved.DocumentID, &saved.ContentType, &saved.MarkdownText, &saved.PDFURL)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return nil, fmt.Errorf("document %s: %w", documentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("upsert document content: %w", err)
	}

	return &saved, nil
}

// GetContent returns nil without error when no content row exists; absence
// means "no content defined yet".
func (r *PostgresDocumentRepository) GetContent(ctx context.Context, documentID string) (*models.DocumentContent, error) {
	query := `
		SELECT document_id, content_type, markdown_text, pdf_url
		FROM document_contents WHERE document_id = $1
	`

	var content models.DocumentContent
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, documentID).
		Scan(&content.DocumentID, &content.ContentType, &content.MarkdownText, &content.PDFURL)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document content: %w", err)
	}

	return &content, nil
}

// reportConditions builds the WHERE clauses and positional args for the
// report query. The date filters are inclusive day bounds on created_at.
func reportConditions(filter repositories.ReportFilter) ([]string, []interface{}) {
	where := []string{"d.company_id = $1"}
	args := []interface{}{filter.CompanyID}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("d.status = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where = append(where, fmt.Sprintf("d.created_at::date >= $%d::date", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where = append(where, fmt.Sprintf("d.created_at::date <= $%d::date", len(args)))
	}

	return where, args
}

// tallyReportSummary counts report items per canonical document status.
func tallyReportSummary(items []repositories.ReportItem) map[models.DocumentStatus]int {
	summary := map[models.DocumentStatus]int{}
	for _, item := range items {
		summary[item.Document.Status]++
	}
	return summary
}

// Report aggregates per-status counts and the matching document list with
// signer counts for one company.
func (r *PostgresDocumentRepository) Report(ctx context.Context, filter repositories.ReportFilter) (*repositories.Report, error) {
	where, args := reportConditions(filter)

	query := fmt.Sprintf(`
		SELECT %s, COUNT(s.id) AS signer_count
		FROM documents d
		LEFT JOIN signers s ON s.document_id = d.id
		WHERE %s
		GROUP BY d.id
		ORDER BY d.created_at DESC
	`, prefixedDocumentColumns("d"), strings.Join(where, " AND "))

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report documents: %w", err)
	}
	defer rows.Close()

	items := []repositories.ReportItem{}
	for rows.Next() {
		var item repositories.ReportItem
		fields := docFields(&item.Document)
		fields = append(fields, &item.SignerCount)
		if err := rows.Scan(fields...); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repositories.Report{
		Summary: tallyReportSummary(items),
		Items:   items,
	}, nil
}

func (r *PostgresDocumentRepository) insertSigners(ctx context.Context, documentID string, signers []repositories.NewSigner) error {
	executor := GetExecutor(ctx, r.pool)
	for _, s := range signers {
		_, err := executor.Exec(ctx, `
			INSERT INTO signers (document_id, name, email, external_id)
			VALUES ($1, $2, $3, $4)
		`, documentID, s.Name, s.Email, s.ExternalID)
		if err != nil {
			if IsPgDuplicateError(err) {
				return fmt.Errorf("duplicate signer email %s: %w", s.Email, domain.ErrValidation)
			}
			return fmt.Errorf("insert signer: %w", err)
		}
	}
	return nil
}

func (r *PostgresDocumentRepository) listSigners(ctx context.Context, documentID string) ([]models.Signer, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, `
		SELECT id, document_id, name, email, token, status, external_id
		FROM signers WHERE document_id = $1 ORDER BY id
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list signers: %w", err)
	}
	defer rows.Close()

	signers := []models.Signer{}
	for rows.Next() {
		var s models.Signer
		if err := rows.Scan(&s.ID, &s.DocumentID, &s.Name, &s.Email, &s.Token, &s.Status, &s.ExternalID); err != nil {
			return nil, fmt.Errorf("scan signer: %w", err)
		}
		signers = append(signers, s)
	}

	return signers, rows.Err()
}

// docFields returns scan destinations in documentColumns order.
func docFields(doc *models.Document) []interface{} {
	return []interface{}{
		&doc.ID,
		&doc.CompanyID,
		&doc.OpenID,
		&doc.Token,
		&doc.Name,
		&doc.Status,
		&doc.CreatedBy,
		&doc.ExternalID,
		&doc.CreatedAt,
		&doc.LastUpdatedAt,
	}
}

func prefixedDocumentColumns(alias string) string {
	cols := strings.Split(documentColumns, ", ")
	for i, c := range cols {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}
