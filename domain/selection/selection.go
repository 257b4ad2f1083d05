package selection

import (
	"sort"
	"strings"

	"camconsole/entity"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

type SearchMode string

const (
	SearchSubstring SearchMode = "substring"
	SearchFuzzy     SearchMode = "fuzzy"
)

// Search reports whether a camera name matches the current query.
type Search func(name string) bool

func matchAll(string) bool { return true }

// NewSearch builds the predicate for the given mode. A blank query matches every name.
func NewSearch(mode SearchMode, searchText string) Search {
	query := strings.ToLower(strings.TrimSpace(searchText))
	if query == "" {
		return matchAll
	}
	switch mode {
	case SearchFuzzy:
		return func(name string) bool {
			return len(fuzzy.Find(query, []string{strings.ToLower(name)})) > 0
		}
	default:
		return func(name string) bool {
			return strings.Contains(strings.ToLower(name), query)
		}
	}
}

// SelectCameras drops unnamed placeholder cameras, applies the optional
// substring search and sorts the rest by name.
func SelectCameras(cameras []entity.Camera, searchText string) []entity.Camera {
	if searchText == "" {
		return SelectCamerasWith(cameras, nil)
	}
	return SelectCamerasWith(cameras, NewSearch(SearchSubstring, searchText))
}

// SelectCamerasWith is SelectCameras with an explicit search predicate; nil means no search.
// The input slice is never modified.
func SelectCamerasWith(cameras []entity.Camera, search Search) []entity.Camera {
	selected := lo.Filter(cameras, func(c entity.Camera, _ int) bool {
		return c.Name != ""
	})
	if search != nil {
		selected = lo.Filter(selected, func(c entity.Camera, _ int) bool {
			return search(c.Name)
		})
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Name < selected[j].Name
	})
	return selected
}

// IndexOf returns the index of the first camera called name, or -1.
func IndexOf(cameras []entity.Camera, name string) int {
	_, index, found := lo.FindIndexOf(cameras, func(c entity.Camera) bool {
		return c.Name == name
	})
	if !found {
		return -1
	}
	return index
}

// PrevNextCamera returns the names of the cameras either side of the active
// one. An empty name means there is no camera in that direction: at either end
// of the list, with no active camera, or when the active camera is not listed.
func PrevNextCamera(cameras []entity.Camera, active *entity.Camera) (prev, next string) {
	if active == nil {
		return "", ""
	}
	index := IndexOf(cameras, active.Name)
	if index < 0 {
		return "", ""
	}
	if index > 0 {
		prev = cameras[index-1].Name
	}
	if index+1 < len(cameras) {
		next = cameras[index+1].Name
	}
	return prev, next
}
