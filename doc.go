/*
 * doc.go, part of gocube.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package cube is the main package of the goCube library. It reads Gaussian
cube files, the plain-text volumetric format produced by quantum chemistry
packages, and turns them into named rectilinear voxel grids with a 4x4
world-space transform.


	**goCube capabilities**

    Reads cube files with single-density framing and with the
	multi-orbital framing flagged by a negative atom count,
	including orbital-index lists that continue over several lines.

    Recovers from payloads whose length doesn't match the declared
	grid, by truncating or zero-padding (with a logged warning),
	so one concatenated or cut-short file doesn't sink a whole batch.

    Builds the grid-to-world affine transform from the three cube
	basis vectors and the origin, scaled by a caller-given factor.
	Basis vectors don't need to be axis-aligned.

    Names grids from the orbital indices declared in the file, or
	sequentially, or from a forced base name when importing a
	numbered sequence.

    Detects numbered file sequences (dens001.cub, dens002.cub, ...)
	from a single starting file, orders them by their numeric value
	(so 2 sorts before 10) and imports the whole run as one batch.

    Writes and reads back batches of grids with the compressed
	container in the svf subpackage, and renders axis-aligned
	cross-sections of a field with the vplot subpackage.

Atom records in the cube header are skipped, not interpreted; goCube is
about the scalar field, not the molecule. Grids use float32 storage, as
that is what the downstream volumetric containers take. The transform is a
gonum mat.Dense, so it can be fed directly to whatever linear algebra the
caller is doing.*/
package cube
