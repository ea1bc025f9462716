package article

import (
	"errors"

	"gorm.io/gorm"
)

// Adjacent finds the neighbors of the article at (date, path) on the strict
// total order (date desc, path desc) over published articles, the same
// order the default query produces. Prev is the nearest newer article, Next
// the nearest older one; either is nil at the timeline boundary.
func (e *Engine) Adjacent(date, path string) (*Neighbors, error) {
	prev, err := e.neighbor(
		"date > ? OR (date = ? AND path > ?)", "date ASC, path ASC", date, path)
	if err != nil {
		return nil, err
	}

	next, err := e.neighbor(
		"date < ? OR (date = ? AND path < ?)", "date DESC, path DESC", date, path)
	if err != nil {
		return nil, err
	}

	return &Neighbors{Prev: prev, Next: next}, nil
}

func (e *Engine) neighbor(cond, order, date, path string) (*Neighbor, error) {
	var n Neighbor

	err := e.db.Model(&rowModel{}).
		Select("title", "path").
		Where("published = ?", true).
		Where("("+cond+")", date, date, path).
		Order(order).
		Limit(1).
		Take(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &n, nil
}
