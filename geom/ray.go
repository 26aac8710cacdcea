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

package geom

import "fmt"

// Ray - промінь з початком Origin і напрямком Direction
// Відстані вимірюються в одиницях Direction, тому напрямок
// має бути нормалізований, інакше відстані не будуть метричними
type Ray struct {
	Origin    Vec2d
	Direction Vec2d
}

// NewRay створює промінь і нормалізує напрямок
func NewRay(origin, direction Vec2d) Ray {
	return Ray{Origin: origin, Direction: Normalize(direction)}
}

// At повертає точку на відстані t від початку
func (r Ray) At(t float64) Vec2d { return r.Origin.Add(r.Direction.Mul(t)) }

func (r Ray) String() string { return fmt.Sprintf("%v->%v", r.Origin, r.Direction) }

// Hit - результат влучання променя у фігуру
type Hit struct {
	Distance float64 // відстань від початку променя
	Point    Vec2d   // точка влучання
	Normal   Vec2d   // нормаль поверхні в точці влучання
}
