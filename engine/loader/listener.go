package loader

import "github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"

// LoadListener observes the progress of load batches. Within a batch the callbacks arrive in
// the order LoadStarted, then per object ObjectLoadStarted, ObjectLoadProgress and
// ObjectLoadFinished (or ObjectLoadFailed), then LoadFinished. All callbacks run on the
// goroutine that calls Poll. Embed NopLoadListener to implement only some of them.
type LoadListener interface {
	LoadStarted(loaderCount, objectCount int)
	ObjectLoadStarted(loaderID int, desc scene_object.Descriptor)
	ObjectLoadProgress(loaderID int, loaded, total int)
	ObjectLoadFinished(loaderID int, desc scene_object.Descriptor)
	ObjectLoadFailed(loaderID int, desc scene_object.Descriptor, err error)
	LoadFinished()
}

// NopLoadListener implements every LoadListener callback as a no-op.
type NopLoadListener struct{}

var _ LoadListener = NopLoadListener{}

func (NopLoadListener) LoadStarted(int, int)                                 {}
func (NopLoadListener) ObjectLoadStarted(int, scene_object.Descriptor)       {}
func (NopLoadListener) ObjectLoadProgress(int, int, int)                     {}
func (NopLoadListener) ObjectLoadFinished(int, scene_object.Descriptor)      {}
func (NopLoadListener) ObjectLoadFailed(int, scene_object.Descriptor, error) {}
func (NopLoadListener) LoadFinished()                                        {}
