// package texture acquires the color data for each renderable surface:
// local asset, remote fetch, or procedural synthesis, in that order. Every
// surface starts on a 1x1 placeholder and is hot-swapped when asynchronous
// provisioning resolves; the frame loop never waits on this package.
package texture

import (
	"sync/atomic"

	"github.com/terraview/terraview/common"
)

// Resource is the indirection cell between asynchronous provisioning and the
// render loop. The provisioning goroutine is the only writer; the render
// thread drains resolved data with TakePending and performs the GPU upload
// itself, so readers only ever observe a fully-initialized image or nothing.
type Resource struct {
	name        string
	placeholder common.TextureStagingData
	pending     atomic.Pointer[common.TextureStagingData]
}

// NewResource creates a resource that serves the given placeholder until
// provisioning resolves.
//
// Parameters:
//   - name: debug label for log output
//   - placeholder: the staging data bound at startup (typically 1x1)
//
// Returns:
//   - *Resource: the new resource cell
func NewResource(name string, placeholder common.TextureStagingData) *Resource {
	return &Resource{
		name:        name,
		placeholder: placeholder,
	}
}

// Name returns the resource's debug label.
//
// Returns:
//   - string: the label
func (r *Resource) Name() string {
	return r.name
}

// Placeholder returns the staging data to bind at startup.
//
// Returns:
//   - common.TextureStagingData: the placeholder image
func (r *Resource) Placeholder() common.TextureStagingData {
	return r.placeholder
}

// TakePending returns resolved staging data exactly once, or nil if nothing
// new has resolved since the last call. The render thread polls this each
// frame and re-uploads the surface's texture when it returns non-nil.
//
// Returns:
//   - *common.TextureStagingData: newly resolved image data, or nil
func (r *Resource) TakePending() *common.TextureStagingData {
	return r.pending.Swap(nil)
}

// resolve publishes staging data for the render thread to pick up.
func (r *Resource) resolve(data *common.TextureStagingData) {
	r.pending.Store(data)
}
