package services

import (
	"context"
	"sort"

	"github.com/kamal-hamza/fc-cli/internal/core/ports"
)

// TagService exposes the derived tag index. Tags live on cards; the
// index is recomputed from card state on every call rather than
// maintained separately, so it can never drift.
type TagService struct {
	repo ports.StoreRepository
}

// NewTagService creates a new tag service.
func NewTagService(repo ports.StoreRepository) *TagService {
	return &TagService{repo: repo}
}

// TagCount is one row of the tag listing.
type TagCount struct {
	Tag   string
	Count int
}

// ListTagsResponse represents the response from listing tags
type ListTagsResponse struct {
	Tags  []TagCount
	Total int
}

// List returns every tag with its card count, sorted by count
// descending, then name.
func (s *TagService) List(ctx context.Context) (*ListTagsResponse, error) {
	store, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	index := store.TagIndex()
	tags := make([]TagCount, 0, len(index))
	for tag, refs := range index {
		tags = append(tags, TagCount{Tag: tag, Count: len(refs)})
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})

	return &ListTagsResponse{Tags: tags, Total: len(tags)}, nil
}
