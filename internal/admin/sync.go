// Package admin implements the product save and delete write paths,
// reconciling form submissions with blob storage objects and the product
// record.
package admin

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/aurelia-jewels/catalog-api/internal/blob"
	"github.com/aurelia-jewels/catalog-api/internal/domain"
	"github.com/aurelia-jewels/catalog-api/internal/events"
	"github.com/aurelia-jewels/catalog-api/internal/repository"
)

// State tracks where a save operation is in its lifecycle. Failed is
// reachable from every state but Idle.
type State int

const (
	StateIdle State = iota
	StateUploading
	StateUpserting
	StatePruning
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUploading:
		return "uploading"
	case StateUpserting:
		return "upserting"
	case StatePruning:
		return "pruning"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// ImageUpload is one newly attached image file, already decoded from its
// transport encoding.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// SaveRequest carries a full form submission: the product fields, the
// files to upload and the existing image URLs marked for removal.
type SaveRequest struct {
	Product      domain.Product
	NewImages    []ImageUpload
	RemoveImages []string
}

// Synchronizer performs the save and delete sequences against blob
// storage and the product repository.
type Synchronizer struct {
	repo   repository.ProductRepository
	store  blob.Storage
	bus    *events.EventBus[any]
	logger hclog.Logger
}

func NewSynchronizer(
	repo repository.ProductRepository,
	store blob.Storage,
	bus *events.EventBus[any],
	logger hclog.Logger,
) *Synchronizer {
	return &Synchronizer{
		repo:   repo,
		store:  store,
		bus:    bus,
		logger: logger,
	}
}

// Save runs the upload, upsert and prune sequence for one form
// submission. Uploads are sequential, in the order the files were
// attached. A failed upload aborts the operation before the upsert;
// blobs uploaded earlier in the same operation are left in place (orphan
// blobs are a cleanup task, not a correctness violation). Prune failures
// after a successful upsert are logged and swallowed: the record is
// authoritative by then.
func (s *Synchronizer) Save(ctx context.Context, req SaveRequest) (*domain.Product, error) {
	product := req.Product
	if product.ID == "" {
		product.ID = GenerateID(product.Name)
	}

	state := StateUploading
	s.logger.Debug("Saving product", "id", product.ID, "state", state)

	uploaded := make([]string, 0, len(req.NewImages))
	for _, img := range req.NewImages {
		url, err := s.store.Save(ImagePath(product.ID, img.FileName), bytes.NewReader(img.Data))
		if err != nil {
			state = StateFailed
			s.logger.Error("Image upload failed", "id", product.ID,
				"file", img.FileName, "state", state, "error", err)
			return nil, fmt.Errorf("unable to upload image %q: %w", img.FileName, err)
		}
		uploaded = append(uploaded, url)
	}

	state = StateUpserting
	s.logger.Debug("Saving product", "id", product.ID, "state", state)

	product.Images = finalImages(product.Images, req.RemoveImages, uploaded)

	saved, err := s.repo.Upsert(ctx, &product)
	if err != nil {
		state = StateFailed
		s.logger.Error("Product upsert failed", "id", product.ID, "state", state, "error", err)
		return nil, fmt.Errorf("unable to save product: %w", err)
	}

	state = StatePruning
	s.logger.Debug("Saving product", "id", product.ID, "state", state)
	s.pruneManaged(req.RemoveImages)

	state = StateDone
	s.logger.Info("Product saved", "id", saved.ID, "state", state, "images", len(saved.Images))

	s.bus.Publish(events.ProductSaved{ProductID: saved.ID})

	return saved, nil
}

// Delete removes the product record and every one of its images that
// lives in the managed blob namespace. External image URLs are left
// untouched and cause no error.
func (s *Synchronizer) Delete(ctx context.Context, id string) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.pruneManaged(product.Images)

	s.logger.Info("Product deleted", "id", id)
	s.bus.Publish(events.ProductDeleted{ProductID: id})

	return nil
}

// pruneManaged deletes the managed-store objects behind the given URLs,
// logging and continuing on failure.
func (s *Synchronizer) pruneManaged(urls []string) {
	for _, url := range urls {
		path, ok := s.store.ParseURL(url)
		if !ok {
			continue
		}
		if err := s.store.Delete(path); err != nil {
			s.logger.Warn("Unable to prune blob", "url", url, "error", err)
		}
	}
}

// finalImages is the kept existing images followed by the freshly
// uploaded URLs, preserving order within each group.
func finalImages(existing, removed, uploaded []string) []string {
	drop := make(map[string]struct{}, len(removed))
	for _, url := range removed {
		drop[url] = struct{}{}
	}

	out := make([]string, 0, len(existing)+len(uploaded))
	for _, url := range existing {
		if _, gone := drop[url]; !gone {
			out = append(out, url)
		}
	}
	return append(out, uploaded...)
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateID derives a stable product id from the name: a slug plus a
// time-based suffix to keep ids unique across products with equal names.
func GenerateID(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "product"
	}
	return fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
}

// ImagePath namespaces an object under the product id with a
// collision-resistant suffix of upload time plus a short random token.
func ImagePath(productID, fileName string) string {
	token := uuid.NewString()[:8]
	return path.Join(productID, fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), token, safeFileName(fileName)))
}

var fileNamePattern = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safeFileName(name string) string {
	name = path.Base(name)
	name = fileNamePattern.ReplaceAllString(name, "_")
	if name == "" || name == "." {
		name = "image"
	}
	return name
}
