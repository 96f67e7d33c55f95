package composer

import (
	"context"
	"image"

	"github.com/goliatone/go-dresscode/pkg/assets"
	"github.com/goliatone/go-dresscode/pkg/model"
)

// Result is the outcome of one asset load. A nil Image with a nil Err means
// there was nothing to load.
type Result struct {
	Image image.Image
	Err   error
}

type task struct {
	src        string
	background bool
	element    int
}

// planTasks lists every asset to fetch: the static background first, then
// each image element with a non-empty src in element order. A src of only
// whitespace is still loaded so its failure gets reported.
func planTasks(background *model.Background, elements []model.Element) []task {
	var plan []task
	if background != nil && background.IsStatic() {
		plan = append(plan, task{src: background.Src, background: true, element: -1})
	}
	for i, element := range elements {
		if element.Type != model.ElementTypeImage || element.Src == "" {
			continue
		}
		plan = append(plan, task{src: element.Src, element: i})
	}
	return plan
}

// runTasks loads every task sequentially. A failure is recorded in its Result
// and never stops the remaining loads.
func runTasks(ctx context.Context, loader assets.Loader, plan []task) []Result {
	results := make([]Result, len(plan))
	for i, t := range plan {
		img, err := loader.Load(ctx, t.src)
		results[i] = Result{Image: img, Err: err}
	}
	return results
}
