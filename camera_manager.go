package raster3d

import "errors"

// ErrNoActiveCamera is returned by CameraManager.Active() when the manager holds no Cameras.
var ErrNoActiveCamera = errors.New("raster3d: no active camera")

// CameraManager holds an ordered set of Cameras, one of which is active at a time. The active Camera is the one
// rendered from, and (as the light is attached to the Camera) the one lighting the scene.
type CameraManager struct {
	cameras []*Camera
	active  int
}

// NewCameraManager returns a CameraManager holding the given Cameras, with the first one active.
func NewCameraManager(cameras ...*Camera) *CameraManager {
	cm := &CameraManager{}
	for _, c := range cameras {
		cm.Add(c)
	}
	return cm
}

// Add appends a Camera to the set. nil Cameras are ignored.
func (cm *CameraManager) Add(camera *Camera) {
	if camera == nil {
		return
	}
	cm.cameras = append(cm.cameras, camera)
}

// Remove removes the Camera at index i; out of range indices are ignored. The active index is kept pointing at a
// valid Camera: removing a Camera before the active one shifts the index down with it, and removing the last Camera
// clamps the index to the new end of the set.
func (cm *CameraManager) Remove(i int) {

	if i < 0 || i >= len(cm.cameras) {
		return
	}

	cm.cameras[i] = nil
	cm.cameras = append(cm.cameras[:i], cm.cameras[i+1:]...)

	if i < cm.active {
		cm.active--
	}

	if cm.active >= len(cm.cameras) {
		cm.active = len(cm.cameras) - 1
	}

	if cm.active < 0 {
		cm.active = 0
	}

}

// SetActive makes the Camera at index i the active one. Out of range indices are ignored.
func (cm *CameraManager) SetActive(i int) {
	if i >= 0 && i < len(cm.cameras) {
		cm.active = i
	}
}

// Next activates the following Camera, wrapping around to the first.
func (cm *CameraManager) Next() {
	if len(cm.cameras) > 0 {
		cm.active = (cm.active + 1) % len(cm.cameras)
	}
}

// Active returns the active Camera, or ErrNoActiveCamera if the set is empty.
func (cm *CameraManager) Active() (*Camera, error) {
	if len(cm.cameras) == 0 {
		return nil, ErrNoActiveCamera
	}
	return cm.cameras[cm.active], nil
}

// Replace swaps the Camera at index i for the given one, as is done when an orbiting Camera moves. Out of range
// indices and nil Cameras are ignored.
func (cm *CameraManager) Replace(i int, camera *Camera) {
	if camera != nil && i >= 0 && i < len(cm.cameras) {
		cm.cameras[i] = camera
	}
}

// ActiveIndex returns the index of the active Camera.
func (cm *CameraManager) ActiveIndex() int {
	return cm.active
}

// Len returns how many Cameras are in the set.
func (cm *CameraManager) Len() int {
	return len(cm.cameras)
}

// All returns a copy of the set of Cameras.
func (cm *CameraManager) All() []*Camera {
	return append([]*Camera(nil), cm.cameras...)
}
