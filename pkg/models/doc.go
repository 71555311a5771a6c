// Package models defines the in-memory exhibition graph: an Exhibition owns
// Rooms and Corridors, which own Walls, which host Exhibits.
//
// # Ownership
//
// Entities are built either by the codec layer (decoding a stored document)
// or by the folder importer (reading a directory tree). After construction
// only the container append operations mutate them:
//
//	exhibition.AddRoom(room)
//	room.AddWall(wall)
//	wall.PlaceExhibit(exhibit)
//
// There is no update-in-place API. Persistence replaces whole documents.
//
// # Invariants
//
// Walls only host IMAGE exhibits and rooms or corridors only host MODEL
// exhibits; PlaceExhibit returns a validation error otherwise. Placing an
// exhibit equal by value to one already present is a no-op. Collections are
// allocated by the constructors and are never nil.
//
// # Rooms and corridors
//
// Room and Corridor are the two variants of an Area. Both embed Space, the
// shared field set; a Corridor additionally lists the rooms it connects by
// label. Connections are weak: a corridor never owns the rooms it joins.
package models
