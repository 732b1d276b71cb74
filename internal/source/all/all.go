// Package all registers every document reader with the source factory.
// Commands blank-import this package; the reader set is decided at build
// time, by extension at run time.
package all

import (
	_ "invoicetl/internal/source/htmlsrc"
	_ "invoicetl/internal/source/jsondoc"
	_ "invoicetl/internal/source/pdfsrc"
)
