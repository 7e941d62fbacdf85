// Package loader reads Swagger 2.0 documents and flattens them into
// [tree.Document] values ready for comparison.
//
// Documents are read from a path, a file:// URI, an http(s) URL, a reader,
// a byte slice, or an already decoded map. YAML and JSON are both accepted.
// Every $ref is resolved while flattening: local JSON pointers always,
// other documents when external references are enabled (the default).
// File references must stay inside the directory of the root document.
//
//	spec, err := loader.LoadWithOptions(
//	    loader.WithFilePath("swagger.yaml"),
//	    loader.WithLogger(loader.NewSlogAdapter(slog.Default())),
//	)
//	if err != nil {
//	    return err
//	}
//	for _, e := range spec.Endpoints() {
//	    fmt.Println(e)
//	}
//
// Only documents declaring swagger "2.0" are accepted; anything else fails
// with an error matching [oaserrors.ErrUnsupportedVersion].
package loader
