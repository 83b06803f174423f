// Package upload adapts multipart file uploads to the file validators.
//
// A File wraps a *multipart.FileHeader together with an upload error code
// that follows the PHP numbering (validator.UploadErrOK,
// validator.UploadErrIniSize, ...). Its content type is sniffed from the
// file's magic bytes with github.com/gabriel-vasile/mimetype, never taken
// from the client's Content-Type header.
//
//	files, err := upload.FromRequest(r, "avatar", cfg.MaxUploadSize)
//	if err != nil {
//	    return err
//	}
//	for _, f := range files {
//	    fmt.Println(f.Name(), f.ContentType(), f.IsImage())
//	}
//
// Files above the server limit passed to FromRequest are kept and marked
// with UploadErrIniSize so the fileSize rule reports them.
package upload
