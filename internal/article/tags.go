package article

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// TagsWithCount aggregates tag frequencies over the published articles.
// Tags are trimmed before counting; empty strings are skipped; a row whose
// tags column fails to parse is skipped with a warning. The result is
// ordered by descending count, ties staying in first-seen order.
func (e *Engine) TagsWithCount() ([]TagCount, error) {
	var rawTags []string

	err := e.db.Model(&rowModel{}).
		Where("published = ?", true).
		Pluck("tags", &rawTags).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	order := make([]string, 0)

	for _, raw := range rawTags {
		if raw == "" {
			continue
		}

		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			log.Warn().Str("tags", raw).Msg("skipping malformed tags column in aggregation")
			continue
		}

		for _, tag := range tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}

			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}

			counts[tag]++
		}
	}

	out := make([]TagCount, 0, len(order))
	for _, tag := range order {
		out = append(out, TagCount{Tag: tag, Count: counts[tag]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	return out, nil
}
