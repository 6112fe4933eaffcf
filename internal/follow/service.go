package follow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MetalDetectorRocks/metal-detector/internal/provider"
)

// ErrAlreadyFollowed indicates the artist is already in the follow list.
var ErrAlreadyFollowed = errors.New("artist already followed")

// ErrNotFollowed indicates the artist is not in the follow list.
var ErrNotFollowed = errors.New("artist not followed")

// Catalog is the slice of the aggregation facade the service needs: a follow
// is only stored for an artist the catalog can actually resolve.
type Catalog interface {
	GetArtist(ctx context.Context, source provider.ProviderName, id string) (*provider.ArtistSummary, error)
}

// Service provides follow-list data operations.
type Service struct {
	db      *sql.DB
	catalog Catalog
}

// NewService creates a follow service.
func NewService(db *sql.DB, catalog Catalog) *Service {
	return &Service{db: db, catalog: catalog}
}

// Follow resolves the artist through the catalog and stores a follow for it.
// Unresolvable artists propagate the catalog's typed error.
func (s *Service) Follow(ctx context.Context, source provider.ProviderName, providerID string) (*Follow, error) {
	summary, err := s.catalog.GetArtist(ctx, source, providerID)
	if err != nil {
		return nil, err
	}

	following, err := s.IsFollowing(ctx, source, providerID)
	if err != nil {
		return nil, err
	}
	if following {
		return nil, ErrAlreadyFollowed
	}

	f := &Follow{
		ID:         uuid.New().String(),
		Source:     source,
		ProviderID: summary.ProviderID,
		ArtistName: summary.Name,
		ArtistURI:  summary.URI,
		CreatedAt:  time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO follows (id, source, provider_id, artist_name, artist_uri, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		f.ID, string(f.Source), f.ProviderID, f.ArtistName, f.ArtistURI,
		f.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("storing follow: %w", err)
	}
	return f, nil
}

// Unfollow removes a follow by source and provider ID.
func (s *Service) Unfollow(ctx context.Context, source provider.ProviderName, providerID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM follows WHERE source = ? AND provider_id = ?`,
		string(source), providerID)
	if err != nil {
		return fmt.Errorf("removing follow: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing follow: %w", err)
	}
	if n == 0 {
		return ErrNotFollowed
	}
	return nil
}

// IsFollowing reports whether a follow exists for the given artist.
func (s *Service) IsFollowing(ctx context.Context, source provider.ProviderName, providerID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM follows WHERE source = ? AND provider_id = ?`,
		string(source), providerID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking follow: %w", err)
	}
	return true, nil
}

// List returns all follows, most recent first.
func (s *Service) List(ctx context.Context) ([]Follow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, provider_id, artist_name, artist_uri, created_at
		FROM follows ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("listing follows: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var follows []Follow
	for rows.Next() {
		var f Follow
		var source, createdAt string
		if err := rows.Scan(&f.ID, &source, &f.ProviderID, &f.ArtistName, &f.ArtistURI, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning follow: %w", err)
		}
		f.Source = provider.ProviderName(source)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			f.CreatedAt = t
		}
		follows = append(follows, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing follows: %w", err)
	}
	return follows, nil
}
