package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/archive"
	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/dbx"
	"github.com/dmitrijs2005/docqa/internal/extract"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/models"
	"github.com/dmitrijs2005/docqa/internal/repositories/repomanager"
	"golang.org/x/sync/singleflight"
)

const (
	CachePolicyCache  = "cache"
	CachePolicyAlways = "always"
)

// DocumentCache returns the text of a document, extracting and storing it
// when needed. Under CachePolicyCache the first record stored for an
// (owner, name) pair is returned forever, even if a later upload under the
// same name has different content. Under CachePolicyAlways every call
// extracts and stores a new record.
type DocumentCache struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	extractor   extract.Extractor
	archive     archive.Archive
	policy      string
	log         logging.Logger

	flights singleflight.Group
}

func NewDocumentCache(db *sql.DB, m repomanager.RepositoryManager, extractor extract.Extractor,
	arch archive.Archive, policy string, log logging.Logger) (*DocumentCache, error) {
	switch policy {
	case CachePolicyCache, CachePolicyAlways:
	default:
		return nil, fmt.Errorf("unknown cache policy %q", policy)
	}
	if arch == nil {
		arch = archive.Nop{}
	}
	return &DocumentCache{
		db:          db,
		repomanager: m,
		extractor:   extractor,
		archive:     arch,
		policy:      policy,
		log:         log.With("component", "documents"),
	}, nil
}

// GetOrExtract returns the text for doc owned by owner.
func (c *DocumentCache) GetOrExtract(ctx context.Context, owner string, doc extract.Document) (string, error) {
	name := doc.BaseName()

	if c.policy == CachePolicyAlways {
		return c.extractAndStore(ctx, owner, name, doc)
	}

	text, found, err := c.lookup(ctx, owner, name)
	if err != nil || found {
		return text, err
	}

	// Concurrent misses for the same pair share one extraction, detached
	// from any single caller; each caller stops waiting on its own ctx.
	shared := context.WithoutCancel(ctx)
	ch := c.flights.DoChan(owner+"\x00"+name, func() (any, error) {
		text, found, err := c.lookup(shared, owner, name)
		if err != nil || found {
			return text, err
		}
		return c.extractAndStore(shared, owner, name, doc)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *DocumentCache) lookup(ctx context.Context, owner, name string) (string, bool, error) {
	rec, err := c.repomanager.Documents(c.db).FindOldest(ctx, owner, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", false, nil
		}
		return "", false, storeErr(fmt.Errorf("error looking up document: %w", err))
	}
	c.log.Debug(ctx, "document cache hit", "owner", owner, "name", name, "id", rec.ID)
	return rec.Text, true, nil
}

func (c *DocumentCache) extractAndStore(ctx context.Context, owner, name string, doc extract.Document) (string, error) {
	text, err := c.extractor.Extract(ctx, doc)
	if err != nil {
		c.log.Warn(ctx, "extraction failed", "owner", owner, "name", name, "error", err)
		return "", err
	}

	rec, inserted, err := c.store(ctx, owner, name, text)
	if err != nil {
		return "", storeErr(fmt.Errorf("error storing document: %w", err))
	}
	if !inserted {
		c.log.Debug(ctx, "document stored concurrently", "owner", owner, "name", name, "id", rec.ID)
		return rec.Text, nil
	}
	c.log.Info(ctx, "document stored", "owner", owner, "name", name, "id", rec.ID, "chars", len(text))

	if loc, err := c.archive.Put(ctx, owner, name, doc.Content); err != nil {
		c.log.Warn(ctx, "archive failed", "owner", owner, "name", name, "error", err)
	} else if loc != "" {
		c.log.Debug(ctx, "document archived", "location", loc)
	}

	return text, nil
}

// store inserts the record. Under CachePolicyCache a record that appeared
// since the lookup, e.g. from another process sharing the database, wins
// and nothing is inserted.
func (c *DocumentCache) store(ctx context.Context, owner, name, text string) (rec *models.Document, inserted bool, err error) {
	err = dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := c.repomanager.Documents(tx)

		if c.policy == CachePolicyCache {
			existing, err := repo.FindOldest(ctx, owner, name)
			if err == nil {
				rec = existing
				return nil
			}
			if !errors.Is(err, common.ErrorNotFound) {
				return err
			}
		}

		created, err := repo.Create(ctx, &models.Document{Owner: owner, Name: name, Text: text})
		if err != nil {
			return err
		}
		rec, inserted = created, true
		return nil
	})
	return rec, inserted, err
}
