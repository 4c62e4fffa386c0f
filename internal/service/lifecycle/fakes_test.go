package lifecycle

import (
	"context"
	"log/slog"
	"strings"

	"zapflow/internal/domain"
	"zapflow/internal/domain/models"
	"zapflow/internal/domain/repositories"
	"zapflow/internal/domain/services"
)

// fakeDocumentRepo is an in-memory DocumentRepository recording calls so
// tests can assert what the lifecycle engine wrote.
type fakeDocumentRepo struct {
	docs     map[string]*models.Document
	contents map[string]*models.DocumentContent

	createErr       error
	lastCreate      *repositories.CreateDocumentParams
	saveFieldsCalls int
	lastUpdate      repositories.DocumentUpdate
	replaceCalls    int
	lastReplace     []repositories.NewSigner
	signerUpdates   map[string]repositories.SignerUpdate
	deleteCalls     int
}

func newFakeDocumentRepo(docs ...*models.Document) *fakeDocumentRepo {
	repo := &fakeDocumentRepo{
		docs:          map[string]*models.Document{},
		contents:      map[string]*models.DocumentContent{},
		signerUpdates: map[string]repositories.SignerUpdate{},
	}
	for _, doc := range docs {
		repo.docs[doc.ID] = doc
		if doc.Content != nil {
			repo.contents[doc.ID] = doc.Content
		}
	}
	return repo
}

func (r *fakeDocumentRepo) CreateWithSigners(ctx context.Context, params repositories.CreateDocumentParams) (*models.Document, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.lastCreate = &params

	doc := &models.Document{
		ID:        "doc-created",
		CompanyID: params.CompanyID,
		Name:      params.Name,
		Status:    models.DocumentStatusDraft,
		CreatedBy: params.CreatedBy,
	}
	for i, s := range params.Signers {
		doc.Signers = append(doc.Signers, models.Signer{
			ID:         "signer-" + string(rune('a'+i)),
			DocumentID: doc.ID,
			Name:       s.Name,
			Email:      s.Email,
			Status:     models.SignerStatusPending,
		})
	}
	r.docs[doc.ID] = doc
	return doc, nil
}

func (r *fakeDocumentRepo) GetWithSigners(ctx context.Context, id string) (*models.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "document not found"}
	}
	return doc, nil
}

func (r *fakeDocumentRepo) List(ctx context.Context) ([]models.Document, error) {
	out := make([]models.Document, 0, len(r.docs))
	for _, doc := range r.docs {
		out = append(out, *doc)
	}
	return out, nil
}

func (r *fakeDocumentRepo) SaveFields(ctx context.Context, id string, upd repositories.DocumentUpdate) (*models.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "document not found"}
	}
	r.saveFieldsCalls++
	r.lastUpdate = upd

	if upd.Name != nil {
		doc.Name = *upd.Name
	}
	if upd.CreatedBy != nil {
		doc.CreatedBy = *upd.CreatedBy
	}
	if upd.ExternalID != nil {
		doc.ExternalID = *upd.ExternalID
	}
	if upd.OpenID != nil {
		doc.OpenID = *upd.OpenID
	}
	if upd.Token != nil {
		doc.Token = *upd.Token
	}
	if upd.Status != nil {
		doc.Status = *upd.Status
	}
	return doc, nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.docs[id]; !ok {
		return &domain.NotFoundError{Message: "document not found"}
	}
	r.deleteCalls++
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepo) ReplaceSigners(ctx context.Context, documentID string, signers []repositories.NewSigner) error {
	r.replaceCalls++
	r.lastReplace = signers
	return nil
}

func (r *fakeDocumentRepo) UpdateSignerByEmail(ctx context.Context, documentID, email string, upd repositories.SignerUpdate) (bool, error) {
	r.signerUpdates[email] = upd

	doc, ok := r.docs[documentID]
	if !ok {
		return false, nil
	}
	for i := range doc.Signers {
		if strings.EqualFold(doc.Signers[i].Email, email) {
			if upd.Status != nil {
				doc.Signers[i].Status = *upd.Status
			}
			if upd.Token != nil {
				doc.Signers[i].Token = *upd.Token
			}
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDocumentRepo) UpsertContent(ctx context.Context, documentID string, content *models.DocumentContent) (*models.DocumentContent, error) {
	content.DocumentID = documentID
	r.contents[documentID] = content
	if doc, ok := r.docs[documentID]; ok {
		doc.Content = content
	}
	return content, nil
}

func (r *fakeDocumentRepo) GetContent(ctx context.Context, documentID string) (*models.DocumentContent, error) {
	return r.contents[documentID], nil
}

func (r *fakeDocumentRepo) Report(ctx context.Context, filter repositories.ReportFilter) (*repositories.Report, error) {
	return &repositories.Report{Summary: map[models.DocumentStatus]int{}}, nil
}

// fakeTxManager runs the function directly without a database.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	return fn(ctx)
}

// fakeGateway returns scripted provider responses.
type fakeGateway struct {
	createResp services.ProviderResponse
	createErr  error
	statusResp services.ProviderResponse
	statusErr  error

	createCalls   int
	statusCalls   int
	lastCreateReq *services.RemoteCreateRequest
	lastRemoteID  string
}

func (g *fakeGateway) CreateDocument(ctx context.Context, apiToken string, req *services.RemoteCreateRequest) (services.ProviderResponse, error) {
	g.createCalls++
	g.lastCreateReq = req
	return g.createResp, g.createErr
}

func (g *fakeGateway) GetStatus(ctx context.Context, apiToken, remoteID string) (services.ProviderResponse, error) {
	g.statusCalls++
	g.lastRemoteID = remoteID
	return g.statusResp, g.statusErr
}

// fakeAnalyzer records the text it was handed.
type fakeAnalyzer struct {
	result   *services.AnalysisResult
	err      error
	lastText string
	calls    int
}

func (a *fakeAnalyzer) Analyze(ctx context.Context, text string) (*services.AnalysisResult, error) {
	a.calls++
	a.lastText = text
	if a.result == nil && a.err == nil {
		return &services.AnalysisResult{}, nil
	}
	return a.result, a.err
}

// fakeExtractor returns scripted PDF text.
type fakeExtractor struct {
	text    string
	err     error
	calls   int
	lastURL string
}

func (e *fakeExtractor) ExtractFromURL(ctx context.Context, url string) (string, error) {
	e.calls++
	e.lastURL = url
	return e.text, e.err
}

// newTestService wires the lifecycle engine with fakes.
func newTestService(docRepo *fakeDocumentRepo, gateway *fakeGateway, analyzer *fakeAnalyzer, extractor *fakeExtractor) (services.DocumentService, *fakeTxManager) {
	if gateway == nil {
		gateway = &fakeGateway{}
	}
	if analyzer == nil {
		analyzer = &fakeAnalyzer{}
	}
	if extractor == nil {
		extractor = &fakeExtractor{}
	}
	tx := &fakeTxManager{}
	svc := NewDocumentService(
		docRepo,
		tx,
		gateway,
		analyzer,
		extractor,
		slog.New(slog.DiscardHandler),
	)
	return svc, tx
}

// draftDocument builds a sendable draft with one signer and markdown content.
func draftDocument() *models.Document {
	return &models.Document{
		ID:        "doc-1",
		CompanyID: "co-1",
		Name:      "Service Agreement",
		Status:    models.DocumentStatusDraft,
		Company:   &models.Company{ID: "co-1", Name: "Acme", APIToken: "zapsign-token"},
		Signers: []models.Signer{
			{ID: "s-1", DocumentID: "doc-1", Name: "Ana", Email: "ana@acme.com", Status: models.SignerStatusPending},
		},
		Content: models.NewMarkdownContent("This agreement sets the commercial terms between the parties involved."),
	}
}
