package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/planets/ecs"
	"github.com/plus3/planets/render"
)

// BodyEntry is one row of the inspector's body list.
type BodyEntry struct {
	Id      ecs.EntityId
	Name    string
	Tracked bool
}

// Bodies lists every named entity in iteration order.
func Bodies(storage *ecs.Storage) []BodyEntry {
	var entries []BodyEntry
	view := ecs.NewView[struct {
		ecs.EntityId
		Name    *render.Name
		Tracked *render.Tracked `ecs:"optional"`
	}](storage)
	for item := range view.Values() {
		entries = append(entries, BodyEntry{
			Id:      item.EntityId,
			Name:    string(*item.Name),
			Tracked: item.Tracked != nil,
		})
	}
	return entries
}

// BodyInspector lists the bodies of the scene and shows the components of the selected
// one. Numeric and boolean fields are editable; edits are written straight into the
// stored component.
type BodyInspector struct {
	selected *ecs.EntityRef
}

func NewBodyInspector() *BodyInspector {
	return &BodyInspector{}
}

func (bi *BodyInspector) Render(storage *ecs.Storage) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 400), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Bodies", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	selectedId, hasSelection := storage.ResolveEntityRef(bi.selected)

	for _, body := range Bodies(storage) {
		label := body.Name
		if body.Tracked {
			label += " (tracked)"
		}
		isSelected := hasSelection && body.Id == selectedId
		if imgui.SelectableBoolV(fmt.Sprintf("%s##%d", label, body.Id), isSelected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			bi.selected = storage.CreateEntityRef(body.Id)
			selectedId, hasSelection = body.Id, true
		}
	}

	imgui.Separator()

	if !hasSelection {
		imgui.Text("No body selected")
		imgui.End()
		return
	}

	var camera *render.Camera
	if storage.ReadSingleton(&camera) && imgui.Button("Track") {
		if err := render.AssignTracking(storage, camera, selectedId); err == nil {
			selectedId, hasSelection = storage.ResolveEntityRef(bi.selected)
		}
	}
	if !hasSelection {
		imgui.End()
		return
	}

	archetype := storage.GetArchetypeById(selectedId.ArchetypeId())
	for _, compType := range archetype.Types() {
		component := storage.GetComponent(selectedId, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			renderValue(compType.Name(), reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderValue draws an editor for v, which must be addressable.
func renderValue(name string, v reflect.Value) {
	id := fmt.Sprintf("##%s%p", name, v.Addr().UnsafePointer())

	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f := float32(v.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &f) {
			SetField(v, float64(f))
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := int32(v.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &i) {
			SetField(v, int64(i))
		}

	case reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(name, &b) {
			SetField(v, b)
		}

	case reflect.String:
		imgui.Text(fmt.Sprintf("%s: %s", name, v.String()))

	case reflect.Struct:
		fields := Fields(v.Type())
		if len(fields) == 0 {
			imgui.BulletText(name)
			return
		}
		for _, field := range fields {
			renderValue(field.Name, v.Field(field.Index))
		}

	case reflect.Pointer:
		if v.IsNil() {
			imgui.Text(name + ": nil")
		} else {
			imgui.Text(fmt.Sprintf("%s: %v", name, v.Elem().Type()))
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, v.Interface()))
	}
}

// SetField stores value into v, converting between numeric kinds. Values that do not
// fit v's kind are ignored.
func SetField(v reflect.Value, value any) {
	if !v.CanSet() {
		return
	}
	switch x := value.(type) {
	case float64:
		if v.CanFloat() {
			v.SetFloat(x)
		}
	case int64:
		switch {
		case v.CanInt():
			if !v.OverflowInt(x) {
				v.SetInt(x)
			}
		case v.CanUint():
			if x >= 0 && !v.OverflowUint(uint64(x)) {
				v.SetUint(uint64(x))
			}
		}
	case bool:
		if v.Kind() == reflect.Bool {
			v.SetBool(x)
		}
	}
}
