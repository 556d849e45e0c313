package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/parischit85-sketch/play-sport-pro-sub002/docstore"
	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
	"github.com/parischit85-sketch/play-sport-pro-sub002/storage"
)

// SnapshotExporter uploads the frozen apply-audit record of a
// tournament to object storage and returns its public URL, giving club
// admins a durable, shareable audit trail outside the database.
type SnapshotExporter interface {
	ExportAudit(ctx context.Context, clubID, tournamentID string) (string, error)
}

type snapshotExporter struct {
	store    docstore.Store
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewSnapshotExporter(store docstore.Store, uploader storage.FileUploader, logger *slog.Logger) SnapshotExporter {
	return &snapshotExporter{store: store, uploader: uploader, logger: logger}
}

func (s *snapshotExporter) ExportAudit(ctx context.Context, clubID, tournamentID string) (string, error) {
	doc, err := s.store.Get(ctx, docstore.AppliedAuditPath(clubID, tournamentID))
	if err != nil {
		if errors.Is(err, docstore.ErrDocumentNotFound) {
			return "", ErrAuditNotFound
		}
		return "", err
	}
	audit := &models.AppliedAudit{}
	if err := doc.Decode(audit); err != nil {
		return "", err
	}

	body, err := json.MarshalIndent(audit, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal audit snapshot: %w", err)
	}

	key := fmt.Sprintf("clubs/%s/championship/%s.json", clubID, tournamentID)
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("upload audit snapshot: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "audit snapshot exported",
			slog.String("club_id", clubID),
			slog.String("tournament_id", tournamentID),
			slog.String("key", result.Key))
	}
	return result.Location, nil
}
