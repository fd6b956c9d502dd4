package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"paperhub/internal/database"
	"paperhub/internal/model"
	"paperhub/internal/repository"
	"paperhub/internal/storage"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("paper not found")
	ErrReaderNil       = errors.New("reader is nil")
	ErrMissingFields   = errors.New("title, content, and mentor id are required")
	ErrUnauthenticated = errors.New("submitter is not authenticated")
	ErrMentorNotFound  = errors.New("assigned mentor not found")
	ErrSelfAssignment  = errors.New("paper cannot be assigned to its uploader")
	ErrStorageWrite    = errors.New("storage write failed")
	ErrStorageRead     = errors.New("storage read failed")
	ErrRecordWrite     = errors.New("record write failed")
)

// SubmitRequest carries one multipart paper submission.
type SubmitRequest struct {
	Reader       io.Reader
	OriginalName string
	ContentType  string
	Size         int64
	Title        string
	Content      string
	SubmitterID  string
	MentorID     string
}

// SubmitResult is the client-facing summary of a stored submission.
type SubmitResult struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	FileName string `json:"fileName"`
}

// PaperListResult is the service-level DTO for paginated papers.
type PaperListResult struct {
	Items []model.Paper `json:"data"`
	Total int           `json:"total"`
}

// PaperService defines the use cases for handling paper submissions.
type PaperService interface {
	// Submit validates the request, streams the file to object storage, and
	// records the paper plus both reference-list appends in one transaction.
	// A failed transaction triggers a compensating delete of the blob.
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)

	// Get returns a single paper record by its ID.
	Get(ctx context.Context, id string) (*model.Paper, error)

	// ListForUser returns papers the user uploaded or was assigned, using
	// limit/offset and a total count.
	ListForUser(ctx context.Context, userID string, limit, offset int) (*PaperListResult, error)

	// Download resolves a paper record and opens a streaming reader on its
	// blob. The caller owns the returned reader.
	Download(ctx context.Context, id string) (io.ReadCloser, *model.Paper, error)

	// PresignDownload resolves a paper record and returns a time-limited URL
	// for fetching its blob directly from object storage.
	PresignDownload(ctx context.Context, id string, expiry time.Duration) (string, error)
}

// paperService is a concrete implementation of PaperService.
type paperService struct {
	db        *sql.DB
	store     storage.Storage
	paperRepo repository.PaperRepository
	userRepo  repository.UserRepository
}

// NewPaperService constructs a new PaperService.
func NewPaperService(db *sql.DB, store storage.Storage, paperRepo repository.PaperRepository, userRepo repository.UserRepository) PaperService {
	return &paperService{db: db, store: store, paperRepo: paperRepo, userRepo: userRepo}
}

func (s *paperService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if req.Reader == nil {
		return nil, ErrReaderNil
	}
	if req.Title == "" || req.Content == "" || req.MentorID == "" {
		return nil, ErrMissingFields
	}
	if req.SubmitterID == "" {
		return nil, ErrUnauthenticated
	}
	if req.MentorID == req.SubmitterID {
		return nil, ErrSelfAssignment
	}

	// Both identities must resolve before any bytes are written.
	mentor, err := s.userRepo.FindByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMentorNotFound
		}
		return nil, fmt.Errorf("resolve mentor: %w", err)
	}
	if mentor.Role != model.RoleMentor {
		return nil, ErrMentorNotFound
	}

	// Generate the blob key using UUID + original extension.
	ext := filepath.Ext(req.OriginalName)
	key := filepath.ToSlash(filepath.Join("papers", uuid.New().String()+ext))

	uploadDate := time.Now().UTC()

	// The single suspend point: stream the bytes into object storage, tagged
	// with the submission's metadata bag.
	objInfo, err := s.store.Put(ctx, key, req.Reader, storage.PutObjectOptions{
		Size:        req.Size,
		ContentType: req.ContentType,
		Metadata: map[string]string{
			"title":             req.Title,
			"content":           req.Content,
			"original-filename": req.OriginalName,
			"uploaded-by":       req.SubmitterID,
			"assigned-to":       req.MentorID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}

	paper := &model.Paper{
		ID:           uuid.New().String(),
		StorageKey:   objInfo.Key,
		OriginalName: req.OriginalName,
		ContentType:  req.ContentType,
		Size:         objInfo.Size,
		UploadDate:   uploadDate,
		Metadata: model.PaperMeta{
			UploadedBy: req.SubmitterID,
			AssignedTo: req.MentorID,
		},
	}

	// The paper record and both reference-list appends become visible
	// together or not at all.
	err = database.WithTx(ctx, s.db, func(ctx context.Context, tx database.Querier) error {
		if _, err := s.paperRepo.WithQuerier(tx).Create(ctx, paper); err != nil {
			return err
		}
		users := s.userRepo.WithQuerier(tx)
		if err := users.AppendPaper(ctx, req.SubmitterID, paper.ID); err != nil {
			return err
		}
		return users.AppendPaper(ctx, req.MentorID, paper.ID)
	})
	if err != nil {
		// Compensate: delete the blob so no unreferenced object survives.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("%w: %v; compensating delete failed: %v", ErrRecordWrite, err, delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrRecordWrite, err)
	}

	return &SubmitResult{
		ID:       paper.ID,
		Title:    req.Title,
		Content:  req.Content,
		FileName: req.OriginalName,
	}, nil
}

// Get returns a paper record by ID.
func (s *paperService) Get(ctx context.Context, id string) (*model.Paper, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	paper, err := s.paperRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return paper, nil
}

// ListForUser returns paginated papers without exposing repository types.
func (s *paperService) ListForUser(ctx context.Context, userID string, limit, offset int) (*PaperListResult, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.paperRepo.ListByUser(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &PaperListResult{Items: res.Items, Total: res.Total}, nil
}

// Download resolves the paper record and opens a read stream on its blob.
func (s *paperService) Download(ctx context.Context, id string) (io.ReadCloser, *model.Paper, error) {
	paper, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, _, err := s.store.Get(ctx, paper.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}
	return rc, paper, nil
}

// PresignDownload hands out a short-lived URL so clients can pull the blob
// from the object store without routing the bytes through this service.
func (s *paperService) PresignDownload(ctx context.Context, id string, expiry time.Duration) (string, error) {
	paper, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	u, err := s.store.PresignGet(ctx, paper.StorageKey, expiry)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageRead, err)
	}
	return u, nil
}
