package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/ecs"
)

// CapabilityScript marks scripted behavior components.
var CapabilityScript = ecs.RegisterCapability("script")

// ErrNoTransform is raised inside a script that touches the transform
// table on an entity without a Transform.
var ErrNoTransform = errors.New("scene: entity has no transform")

// Lua globals a script may define.
const (
	luaOnStart  = "on_start"
	luaOnUpdate = "on_update"
)

// Script runs Lua behavior on its entity. Each script owns one VM.
//
// A script may define on_start() and on_update(dt). It sees a global
// log(msg) and a transform table:
//
//	transform.position()           -- x, y, z
//	transform.set_position(x, y, z)
//	transform.rotation()           -- pitch, yaw, roll in degrees
//	transform.set_rotation(x, y, z)
//
// Any Lua error is logged at warning level and disables the script.
// Single-goroutine access only (game loop).
type Script struct {
	ecs.Base

	name     string
	source   string
	vm       *lua.LState
	disabled bool
	err      error
}

// Capabilities reports CapabilityScript.
func (*Script) Capabilities() ecs.CapabilitySet { return CapabilityScript.Set() }

// SetSource sets the Lua chunk run at Start. name labels log entries.
func (s *Script) SetSource(name, source string) {
	s.name, s.source = name, source
}

// LoadFile reads the chunk from path.
func (s *Script) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scene: load script: %w", err)
	}
	s.SetSource(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), string(data))
	return nil
}

// Name returns the script label.
func (s *Script) Name() string { return s.name }

// Enabled reports whether the script still runs.
func (s *Script) Enabled() bool { return !s.disabled }

// Err returns the error that disabled the script, if any.
func (s *Script) Err() error { return s.err }

// Start creates the VM, runs the chunk and calls on_start.
func (s *Script) Start() {
	if s.disabled || s.source == "" {
		return
	}
	s.vm = lua.NewState()
	s.vm.SetGlobal("API_VERSION", lua.LNumber(1))
	s.vm.SetGlobal("log", s.vm.NewFunction(s.luaLog))
	s.vm.SetGlobal("transform", s.transformTable())

	if err := s.vm.DoString(s.source); err != nil {
		s.fail(err)
		return
	}
	varlet.Logger().Debug("loaded lua script", zap.String("script", s.name))
	s.call(luaOnStart)
}

// Update calls on_update(dt).
func (s *Script) Update(dt float64) {
	if s.disabled || s.vm == nil {
		return
	}
	s.call(luaOnUpdate, lua.LNumber(dt))
}

// OnDestroy closes the VM.
func (s *Script) OnDestroy() {
	s.close()
}

func (s *Script) call(name string, args ...lua.LValue) {
	fn := s.vm.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return
	}
	if err := s.vm.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...); err != nil {
		s.fail(err)
	}
}

func (s *Script) fail(err error) {
	s.err = err
	s.disabled = true
	fields := []zap.Field{zap.String("script", s.name), zap.Error(err)}
	if owner := s.Owner(); owner != nil {
		fields = append(fields, zap.Stringer("entity", owner))
	}
	varlet.Logger().Warn("lua script error, script disabled", fields...)
	s.close()
}

func (s *Script) close() {
	if s.vm != nil {
		s.vm.Close()
		s.vm = nil
	}
}

func (s *Script) luaLog(L *lua.LState) int {
	varlet.Logger().Info("lua",
		zap.String("script", s.name),
		zap.String("msg", L.ToStringMeta(L.Get(1)).String()))
	return 0
}

func (s *Script) transform(L *lua.LState) *Transform {
	var t *Transform
	if owner := s.Owner(); owner != nil {
		t = ecs.GetComponent[*Transform](owner)
	}
	if t == nil {
		L.RaiseError("%v", ErrNoTransform)
	}
	return t
}

func checkVec3(L *lua.LState) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(L.CheckNumber(1)),
		float32(L.CheckNumber(2)),
		float32(L.CheckNumber(3)),
	}
}

func pushVec3(L *lua.LState, v mgl32.Vec3) int {
	L.Push(lua.LNumber(v.X()))
	L.Push(lua.LNumber(v.Y()))
	L.Push(lua.LNumber(v.Z()))
	return 3
}

func (s *Script) transformTable() *lua.LTable {
	t := s.vm.NewTable()
	s.vm.SetFuncs(t, map[string]lua.LGFunction{
		"position": func(L *lua.LState) int {
			return pushVec3(L, s.transform(L).Position())
		},
		"set_position": func(L *lua.LState) int {
			s.transform(L).SetPosition(checkVec3(L))
			return 0
		},
		"rotation": func(L *lua.LState) int {
			return pushVec3(L, s.transform(L).Rotation())
		},
		"set_rotation": func(L *lua.LState) int {
			s.transform(L).SetRotation(checkVec3(L))
			return 0
		},
	})
	return t
}
