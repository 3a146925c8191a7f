// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package systemd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NVIDIA/hostcheck/pkg/errors"
	"github.com/coreos/go-systemd/v22/dbus"
)

const (
	propActiveState = "ActiveState"
	stateActive     = "active"
)

var unitSuffixes = []string{
	".service", ".socket", ".target", ".mount", ".timer", ".path", ".slice", ".scope",
}

// unitConn is the subset of the systemd D-Bus connection the prober uses.
type unitConn interface {
	GetUnitPropertyContext(ctx context.Context, unit string, propertyName string) (*dbus.Property, error)
	Close()
}

// Prober reads unit state from systemd.
type Prober struct {
	connect func(ctx context.Context) (unitConn, error)
}

// NewProber returns a Prober connected to the system instance of systemd.
func NewProber() *Prober {
	return &Prober{
		connect: func(ctx context.Context) (unitConn, error) {
			return dbus.NewSystemdConnectionContext(ctx)
		},
	}
}

// UnitName returns name with ".service" appended unless it already carries a unit suffix.
func UnitName(name string) string {
	for _, s := range unitSuffixes {
		if strings.HasSuffix(name, s) {
			return name
		}
	}
	return name + ".service"
}

// ActiveState returns the ActiveState property of the named unit.
func (p *Prober) ActiveState(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	conn, err := p.connect(ctx)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeUnavailable, "failed to connect to systemd", err)
	}
	defer conn.Close()

	unit := UnitName(name)
	prop, err := conn.GetUnitPropertyContext(ctx, unit, propActiveState)
	if err != nil {
		return "", fmt.Errorf("failed to get %s of %s: %w", propActiveState, unit, err)
	}

	state, ok := prop.Value.Value().(string)
	if !ok {
		return "", errors.NewWithContext(errors.ErrCodeInternal, "unexpected ActiveState value",
			map[string]any{"unit": unit, "value": prop.Value.String()})
	}

	slog.Debug("probed unit", slog.String("unit", unit), slog.String("state", state))
	return state, nil
}

// Status reports whether the unit is active. When it is not, desc carries
// the observed state.
func (p *Prober) Status(ctx context.Context, name string) (healthy bool, desc string, err error) {
	state, err := p.ActiveState(ctx, name)
	if err != nil {
		return false, "", err
	}
	if state == stateActive {
		return true, "", nil
	}
	return false, fmt.Sprintf("%s is %s", UnitName(name), state), nil
}
