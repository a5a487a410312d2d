// Package upload describes files received with a multipart request and the
// operations a handler performs on them once validation has passed.
//
// A File is built from the metadata the transport materialised before
// validation ran: the temporary path, the declared size, the upload error code
// (0..8, the conventional multipart upload status codes), the client-supplied
// filename and the client-declared media type. Apart from its moved flag a File
// never changes after construction.
//
// # Moving files
//
// A File can be relocated exactly once, either on the local filesystem with
// MoveTo or into a Storage backend with Store:
//
//	f, err := upload.New(tmpPath, size, upload.CodeOK, "avatar.png", "image/png")
//	if err != nil {
//		return err
//	}
//	if err := f.MoveTo("/srv/uploads/avatar.png"); err != nil {
//		return err
//	}
//
//	storage, _ := upload.NewLocalStorage("/srv/uploads")
//	obj, err := f.Store(ctx, storage, "") // empty key picks a unique name
//
// After a successful move, Open, MoveTo and Store fail with ErrAlreadyMoved.
//
// # Content detection
//
// SniffedMediaType inspects the stored bytes rather than trusting the client
// declared type, so a renamed executable does not pass as an image. The default
// sniffer uses github.com/gabriel-vasile/mimetype; ContentSniffer falls back to
// net/http content detection.
//
// # Storage backends
//
//   - LocalStorage: writes below a base directory, rejecting path traversal
//   - S3Storage: AWS S3 and S3-compatible services (MinIO, Wasabi, ...)
package upload
