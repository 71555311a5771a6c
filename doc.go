// Package vrem builds and stores virtual reality exhibitions.
//
// An exhibition is a set of rooms and corridors. Rooms have walls, walls
// carry image exhibits and rooms may also hold free standing 3D models.
// Exhibitions are imported from a folder tree and stored in MongoDB as one
// document each.
//
// # Folder layout
//
//	expo/                    exhibition root
//	  hall/                  a room, named after the folder
//	    room-config.json     optional room overrides
//	    0/                   wall 0; walls are numbered from zero
//	      wall-config.json   optional wall overrides
//	      sunset.png         an image exhibit
//	      sunset.json        optional exhibit overrides
//	    1/
//	  __drafts/              skipped, reserved prefix
//
// Wall folders are read in order until the first missing number. Images
// are laid out left to right with a fixed border and padding. Names and
// descriptions can be carried over from a previous version of the same
// exhibition, matched by exhibit path.
//
// # Quick Start
//
//	vrem config init
//	vrem import --path ./expo --name expo
//	vrem show --name expo --exhibits
//	vrem export --name expo --output expo.json
//
// # Key Packages
//
//	pkg/models       - Exhibition, Room, Corridor, Wall and Exhibit
//	pkg/codec        - BSON codecs built by explicit composition
//	pkg/importer     - Folder importer
//	pkg/layout       - Room and exhibit placement
//	pkg/merge        - Reference metadata merge
//	pkg/store        - MongoDB repository
//	pkg/config       - Configuration loading
//	pkg/logger       - Structured logging
//	pkg/metrics      - Prometheus collectors
//	pkg/observability - Tracing
package vrem
