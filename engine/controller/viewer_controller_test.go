package controller

import (
	"testing"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/interaction"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/picker"
	"github.com/Carmen-Shannon/anatomy-viewer/engine/scene_object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoverHighlightsAndRestores(t *testing.T) {
	heart := newObject(t, "heart", "Heart", "circulatory")
	lung := newObject(t, "lung", "Lung", "respiratory")
	v := NewViewerController(newRegistry(t, heart, lung), newRecordingCamera())
	original := heart.Material().Emissive

	v.HandleObjectHovered(picker.PickResult{Object: heart})
	assert.Equal(t, HoveredEmissive, heart.Material().Emissive)
	assert.Equal(t, heart, v.Hovered())

	v.HandleObjectHovered(picker.PickResult{Object: lung})
	assert.Equal(t, original, heart.Material().Emissive)
	assert.Equal(t, HoveredEmissive, lung.Material().Emissive)

	v.HandleObjectHovered(picker.PickResult{})
	assert.Equal(t, original, lung.Material().Emissive)
	assert.Nil(t, v.Hovered())
}

func TestSelectionSurvivesHoverLeaving(t *testing.T) {
	heart := newObject(t, "heart", "Heart", "circulatory")
	lung := newObject(t, "lung", "Lung", "respiratory")
	var selections []scene_object.SceneObject
	v := NewViewerController(newRegistry(t, heart, lung), newRecordingCamera(),
		WithSelectionHandler(func(obj scene_object.SceneObject) { selections = append(selections, obj) }))

	v.HandleObjectHovered(picker.PickResult{Object: heart})
	v.HandleObjectClicked(picker.PickResult{Object: heart})
	assert.Equal(t, SelectedEmissive, heart.Material().Emissive)

	v.HandleObjectHovered(picker.PickResult{Object: lung})
	assert.Equal(t, SelectedEmissive, heart.Material().Emissive, "selected keeps its tint when hover moves on")

	v.HandleObjectClicked(picker.PickResult{Object: lung})
	assert.Equal(t, scene_object.Material{}.Emissive, heart.Material().Emissive)
	assert.Equal(t, lung, v.Selected())

	v.HandleObjectClicked(picker.PickResult{})
	assert.Nil(t, v.Selected())
	require.Len(t, selections, 3)
	assert.Nil(t, selections[2])
}

func TestViewerKeys(t *testing.T) {
	heart := newObject(t, "heart", "Heart", "circulatory")
	cc := newRecordingCamera()
	v := NewViewerController(newRegistry(t, heart), cc)

	v.HandleKeyDown(common.KeyV, interaction.State{})
	assert.True(t, heart.Visible(), "V without a selection does nothing")

	v.HandleObjectClicked(picker.PickResult{Object: heart})
	v.HandleKeyDown(common.KeyV, interaction.State{})
	assert.False(t, heart.Visible())
	v.HandleKeyDown(common.KeyV, interaction.State{})
	assert.True(t, heart.Visible())

	v.HandleKeyDown(common.KeyC, interaction.State{})
	assert.True(t, v.ContentsVisible())

	v.HandleKeyDown(common.KeyR, interaction.State{})
	assert.Equal(t, 1, cc.resets, "other keys reach the base controller")
}

func TestContentsSortedByName(t *testing.T) {
	reg := newRegistry(t,
		newObject(t, "3", "Stomach", ""),
		newObject(t, "1", "Aorta", ""),
		newObject(t, "2", "Liver", ""),
	)
	v := NewViewerController(reg, newRecordingCamera())

	var names []string
	for _, obj := range v.Contents() {
		names = append(names, obj.Name())
	}
	assert.Equal(t, []string{"Aorta", "Liver", "Stomach"}, names)
}

func TestLoadFinishedRecomputesAndResets(t *testing.T) {
	cc := newRecordingCamera()
	v := NewViewerController(newRegistry(t, newObject(t, "a", "A", "")), cc)

	v.LoadFinished()

	assert.Equal(t, 1, cc.recomputed)
	assert.Equal(t, 1, cc.resets)
}

func TestViewerHelpExtendsBase(t *testing.T) {
	v := NewViewerController(newRegistry(t), newRecordingCamera())

	help := v.Help()

	assert.Equal(t, "Basic Controls", help.Title)
	assert.Equal(t, "V", help.Items[len(help.Items)-2].Control)
}
