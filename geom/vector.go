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

// Йоу, чат! Сьогодні ми розберемо вектори для нашої 2D геометрії!
// Vec2 - це просто масив з двох чисел, але з купою корисних методів.
// Один generic тип покриває і цілі, і дробові координати.

package geom

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Vec2 - двовимірний вектор
// I може бути будь-яким знаковим числовим типом (int, float64 тощо)
type Vec2[I constraints.Signed | constraints.Float] [2]I

// Скорочення для найчастіших варіантів
type (
	Vec2d = Vec2[float64] // дробовий вектор, на ньому працює вся геометрія
	Vec2i = Vec2[int]     // цілий вектор, наприклад для клітинок сітки
)

// X повертає першу координату
func (v Vec2[I]) X() I { return v[0] }

// Y повертає другу координату
func (v Vec2[I]) Y() I { return v[1] }

// Add додає інший вектор до поточного
func (v Vec2[I]) Add(other Vec2[I]) Vec2[I] { return Vec2[I]{v[0] + other[0], v[1] + other[1]} }

// Sub віднімає інший вектор від поточного
func (v Vec2[I]) Sub(other Vec2[I]) Vec2[I] { return Vec2[I]{v[0] - other[0], v[1] - other[1]} }

// Mul множить вектор на скаляр
func (v Vec2[I]) Mul(i I) Vec2[I] { return Vec2[I]{v[0] * i, v[1] * i} }

// Neg розвертає вектор у протилежний бік
func (v Vec2[I]) Neg() Vec2[I] { return Vec2[I]{-v[0], -v[1]} }

// Max повертає вектор з максимальними координатами
func (v Vec2[I]) Max(other Vec2[I]) Vec2[I] { return Vec2[I]{max(v[0], other[0]), max(v[1], other[1])} }

// Min повертає вектор з мінімальними координатами
func (v Vec2[I]) Min(other Vec2[I]) Vec2[I] { return Vec2[I]{min(v[0], other[0]), min(v[1], other[1])} }

// Less перевіряє чи всі координати строго менші за other
func (v Vec2[I]) Less(other Vec2[I]) bool { return v[0] < other[0] && v[1] < other[1] }

// More перевіряє чи всі координати строго більші за other
func (v Vec2[I]) More(other Vec2[I]) bool { return v[0] > other[0] && v[1] > other[1] }

// LessEq - те саме що Less, але рівність теж рахується
func (v Vec2[I]) LessEq(other Vec2[I]) bool { return v[0] <= other[0] && v[1] <= other[1] }

// MoreEq - те саме що More, але рівність теж рахується
func (v Vec2[I]) MoreEq(other Vec2[I]) bool { return v[0] >= other[0] && v[1] >= other[1] }

// Dot - скалярний добуток
func (v Vec2[I]) Dot(other Vec2[I]) I { return v[0]*other[0] + v[1]*other[1] }

// Cross - 2D векторний добуток (z-компонента 3D добутку)
// Знак показує з якого боку лежить other відносно v
func (v Vec2[I]) Cross(other Vec2[I]) I { return v[0]*other[1] - v[1]*other[0] }

// Len2 повертає квадрат довжини, без кореня
func (v Vec2[I]) Len2() I { return v.Dot(v) }

// Norm повертає довжину вектора
func (v Vec2[I]) Norm() float64 { return math.Sqrt(float64(v.Len2())) }

// Sum повертає суму всіх координат
func (v Vec2[I]) Sum() I { return v[0] + v[1] }

func (v Vec2[I]) String() string { return fmt.Sprintf("(%v, %v)", v[0], v[1]) }

// Normalize повертає одиничний вектор того ж напрямку
// Для нульового вектора повертає нульовий вектор
func Normalize(v Vec2d) Vec2d {
	n := v.Norm()
	if n == 0 {
		return Vec2d{}
	}
	return v.Mul(1 / n)
}

// Lerp - лінійна інтерполяція між a (t=0) і b (t=1)
func Lerp(a, b Vec2d, t float64) Vec2d {
	return a.Add(b.Sub(a).Mul(t))
}

// Clamp обрізає кожну координату v до діапазону [lo, hi]
func Clamp(v, lo, hi Vec2d) Vec2d {
	return v.Max(lo).Min(hi)
}

// Abs повертає вектор з модулями координат
func Abs(v Vec2d) Vec2d {
	return Vec2d{math.Abs(v[0]), math.Abs(v[1])}
}
