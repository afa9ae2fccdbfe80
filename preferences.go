// This file is part of osrdemo.
//
// osrdemo is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// osrdemo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with osrdemo.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"

	"github.com/jetsetilly/osrdemo/camera"
	"github.com/jetsetilly/osrdemo/logger"
	"github.com/jetsetilly/osrdemo/prefs"
)

// preferences for the interactive and headless modes. the values are saved
// to disk under the resources path.
type preferences struct {
	dsk *prefs.Disk

	width      prefs.Int
	height     prefs.Int
	fullscreen prefs.Bool
	vsync      prefs.Bool

	offscreen prefs.Bool
	points    prefs.Int

	fov                 prefs.Float
	znear               prefs.Float
	zfar                prefs.Float
	mouseSensitivity    prefs.Float
	keyboardSensitivity prefs.Float
}

func positive(name string) func(prefs.Value) error {
	return func(v prefs.Value) error {
		if v.(int) <= 0 {
			return fmt.Errorf("%s must be greater than zero", name)
		}
		return nil
	}
}

func newPreferences(path string) (*preferences, error) {
	p := &preferences{}

	p.width.SetHookPre(positive("display.width"))
	p.height.SetHookPre(positive("display.height"))
	p.points.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return fmt.Errorf("render.points must not be negative")
		}
		return nil
	})

	err := p.setDefaults()
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	for _, e := range []struct {
		key string
		v   interface {
			fmt.Stringer
			Set(prefs.Value) error
			Get() prefs.Value
		}
	}{
		{"display.width", &p.width},
		{"display.height", &p.height},
		{"display.fullscreen", &p.fullscreen},
		{"display.vsync", &p.vsync},
		{"render.offscreen", &p.offscreen},
		{"render.points", &p.points},
		{"camera.fov", &p.fov},
		{"camera.znear", &p.znear},
		{"camera.zfar", &p.zfar},
		{"camera.mouseSensitivity", &p.mouseSensitivity},
		{"camera.keyboardSensitivity", &p.keyboardSensitivity},
	} {
		err = p.dsk.Add(e.key, e.v)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

func (p *preferences) setDefaults() error {
	for _, d := range []struct {
		set func(prefs.Value) error
		v   prefs.Value
	}{
		{p.width.Set, 1280},
		{p.height.Set, 800},
		{p.fullscreen.Set, false},
		{p.vsync.Set, true},
		{p.offscreen.Set, true},
		{p.points.Set, 10000},
		{p.fov.Set, float64(camera.DefaultPreferences.Fov)},
		{p.znear.Set, float64(camera.DefaultPreferences.ZNear)},
		{p.zfar.Set, float64(camera.DefaultPreferences.ZFar)},
		{p.mouseSensitivity.Set, float64(camera.DefaultPreferences.MouseSensitivity)},
		{p.keyboardSensitivity.Set, float64(camera.DefaultPreferences.KeyboardSensitivity)},
	} {
		err := d.set(d.v)
		if err != nil {
			return err
		}
	}
	return nil
}

// load preferences from disk. the file is saved before the session
// preferences are applied so that a missing file is created with the current
// values, and so that session values never reach the disk.
func (p *preferences) load(session string) error {
	err := p.dsk.Load()
	if err != nil {
		return err
	}
	err = p.dsk.Save()
	if err != nil {
		return err
	}

	if session == "" {
		return nil
	}

	prefs.PushCommandLineStack(session)
	err = p.dsk.Load()
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "prefs", "unused session preferences: %s", unused)
	}
	return err
}

// camera returns the camera preferences.
func (p *preferences) camera() camera.Preferences {
	return camera.Preferences{
		Fov:                 float32(p.fov.Get().(float64)),
		ZNear:               float32(p.znear.Get().(float64)),
		ZFar:                float32(p.zfar.Get().(float64)),
		MouseSensitivity:    float32(p.mouseSensitivity.Get().(float64)),
		KeyboardSensitivity: float32(p.keyboardSensitivity.Get().(float64)),
	}
}
