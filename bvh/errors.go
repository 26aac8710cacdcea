// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package bvh

import "github.com/pkg/errors"

// Помилки передумов. Їх повертають до будь-якої зміни дерева,
// тож після помилки дерево лишається таким самим як було.
var (
	// ErrAlreadyContained - фігура вже лежить у дереві
	ErrAlreadyContained = errors.New("shape is already contained in the bvh")
	// ErrNotContained - фігури немає в дереві
	ErrNotContained = errors.New("shape is not contained in the bvh")
	// ErrInvalidBounds - межі фігури містять NaN або нескінченність.
	// Така фігура зламала б порівняння в усіх предках.
	ErrInvalidBounds = errors.New("shape bounds are not finite")
)
