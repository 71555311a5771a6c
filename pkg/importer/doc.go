// Package importer builds an exhibition from a folder tree.
//
// Layout of an exhibition folder:
//
//	<exhibition>/
//	  <room>/                 one directory per room, "__" prefixed ones are ignored
//	    room-config.json      optional room sidecar
//	    0/ 1/ 2/ ...          walls, scanned from 0 up to the first missing index
//	      wall-config.json    optional wall sidecar
//	      <name>.png          one image exhibit per file (png, jpg, jpeg)
//	      <name>.json         optional exhibit sidecar
//
// Missing sizes are derived from the image dimensions and missing positions
// from the layout package. A malformed sidecar aborts the whole import;
// a room whose files cannot be read is logged and skipped.
package importer
