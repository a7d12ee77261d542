package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/flexile/fieldlayout/pkg/domain"
	"github.com/flexile/fieldlayout/pkg/grouping"
)

// Loader adapts a Loam repository to the ports.FormLoader interface.
// Documents are read on every call, so edits are picked up without a restart.
type Loader struct {
	Repo *loam.TypedRepository[FormMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[FormMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository over dir.
// Strict mode keeps numbers as json.Number across JSON, YAML and Markdown documents.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[FormMetadata](repo)), nil
}

// GetForm loads the form with the given ID.
// A document whose file name matches the ID is read directly; otherwise the
// repository is listed to find a document declaring that ID.
func (l *Loader) GetForm(ctx context.Context, id string) (domain.Form, error) {
	if doc, err := l.Repo.Get(ctx, id); err == nil && documentID(doc.ID, doc.Data) == id {
		return toForm(doc.ID, doc.Data, doc.Content)
	}

	index, err := l.scan(ctx)
	if err != nil {
		return domain.Form{}, err
	}
	form, ok := index[id]
	if !ok {
		return domain.Form{}, fmt.Errorf("%w: %s", domain.ErrFormNotFound, id)
	}
	return form, nil
}

// ListForms returns the IDs of all forms in the repository, sorted.
func (l *Loader) ListForms(ctx context.Context) ([]string, error) {
	index, err := l.scan(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (l *Loader) scan(ctx context.Context) (map[string]domain.Form, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	index := make(map[string]domain.Form, len(docs))
	seen := make(map[string]string, len(docs))
	for _, doc := range docs {
		id := documentID(doc.ID, doc.Data)

		// Collision Detection
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: form '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		form, err := toForm(doc.ID, doc.Data, doc.Content)
		if err != nil {
			return nil, err
		}
		index[id] = form
	}
	return index, nil
}

// documentID prefers the ID declared in metadata over the file name.
func documentID(docID string, meta FormMetadata) string {
	rawID := meta.ID
	if rawID == "" {
		rawID = docID
	}
	return trimExtension(rawID)
}

func toForm(docID string, meta FormMetadata, content string) (domain.Form, error) {
	fields, err := decodeFields(meta.Fields)
	if err != nil {
		return domain.Form{}, fmt.Errorf("invalid form %s: %w", docID, err)
	}
	pairs, err := decodePairs(meta.Pairs)
	if err != nil {
		return domain.Form{}, fmt.Errorf("invalid form %s: %w", docID, err)
	}

	form := domain.Form{
		ID:          documentID(docID, meta),
		Title:       meta.Title,
		Description: meta.Description,
		Fields:      fields,
		Pairs:       pairs,
	}
	// Markdown body doubles as the description.
	if form.Description == "" {
		form.Description = strings.TrimSpace(content)
	}
	return form, nil
}

func decodePairs(raw []any) ([]grouping.Pair, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var lists [][]string
	if err := strictDecode(raw, &lists); err != nil {
		return nil, fmt.Errorf("invalid pairs: %w", err)
	}
	pairs := make([]grouping.Pair, 0, len(lists))
	for i, p := range lists {
		if len(p) != 2 {
			return nil, fmt.Errorf("pair %d has %d keys, expected 2", i, len(p))
		}
		pairs = append(pairs, grouping.Pair{p[0], p[1]})
	}
	return pairs, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
