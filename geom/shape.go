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

// Йоу, чат! Тут описано що взагалі таке "фігура" для нашого дерева.
// BVH не знає нічого про кола чи прямокутники - йому достатньо
// щоб фігура вміла віддати свої межі і відповісти на кілька питань.

package geom

// Shape - будь-яка 2D фігура, яку можна покласти в BVH
//
// ВАЖЛИВО: Bounds рахується щоразу заново, а дерево кешує копію.
// Якщо геометрія фігури змінилась - треба викликати Update на дереві,
// інакше кешовані межі розійдуться з реальними і пошук почне брехати.
type Shape interface {
	// Bounds повертає щільний обмежувальний прямокутник
	Bounds() Rect
	// ContainsPoint перевіряє чи точка всередині фігури
	ContainsPoint(p Vec2d) bool
	// ContainsShape перевіряє чи other повністю всередині фігури
	ContainsShape(other Shape) bool
	// Overlaps перевіряє чи фігури перетинаються
	Overlaps(other Shape) bool
	// Contact рахує деталі перетину, false якщо перетину немає
	Contact(other Shape) (Manifold, bool)
	// Raycast шукає влучання променя не далі maxLength
	Raycast(ray Ray, maxLength float64) (Hit, bool)
}

// Mover - фігура, яку можна зсунути
type Mover interface {
	Translate(d Vec2d)
}

// Manifold - деталі контакту двох фігур
// Normal дивиться від першої фігури до другої
type Manifold struct {
	Normal Vec2d   // напрямок виштовхування
	Depth  float64 // глибина проникнення
	Points []Vec2d // точки контакту
}

// Flip повертає той самий контакт з точки зору другої фігури
func (m Manifold) Flip() Manifold {
	m.Normal = m.Normal.Neg()
	return m
}
