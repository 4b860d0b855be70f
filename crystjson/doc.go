package crystjson

//Package crystjson implements serialization and unserialization of
//gocryst data types. Its planned use is the communication of gocryst
//programs with other, independent programs which can be written in
//languages other than Go, as long as those languages implement a
//way of serializing and unserializing JSON data. The containers here
//are plain data: a structure becomes its lattice matrix (row-major,
//absent when the structure has no lattice), a coordinate-mode string
//and a list of sites.
