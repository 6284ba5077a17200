// File: internal/gallery/uploader.go
package gallery

import (
	"context"
	"time"

	"pixdrop/pkg/storage"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	msgUploaded      = "Image uploaded successfully!"
	msgUploadFailed  = "Upload failed"
	msgNotAnImage    = "Please select an image file"
	defaultResetWait = 2 * time.Second
)

// Draft is the file chosen for upload. File is nil once the upload succeeded and the draft only lingers for display
type Draft struct {
	File           *File
	PreviewDataURL string
	DisplayName    string
}

type UploaderOptions struct {
	CacheControlSeconds int
	// How long an uploaded draft stays visible before it is cleared
	ResetDelay time.Duration
	// Generates the storage key for an original file name. Defaults to ObjectKey at the current time
	KeyFunc func(originalName string) string
}

// Uploader holds one optional draft and at most one upload in flight.
// All methods must be called from the event loop; storage calls run inside the returned commands
type Uploader struct {
	ctx       context.Context
	bucket    storage.Bucket
	notifier  Notifier
	opts      UploaderOptions
	draft     *Draft
	seq       uint64
	uploading bool
}

func NewUploader(ctx context.Context, bucket storage.Bucket, notifier Notifier, opts UploaderOptions) *Uploader {
	if opts.ResetDelay < 0 {
		opts.ResetDelay = defaultResetWait
	}
	if opts.KeyFunc == nil {
		opts.KeyFunc = newObjectKey
	}
	return &Uploader{
		ctx:      ctx,
		bucket:   bucket,
		notifier: notifier,
		opts:     opts,
	}
}

// SelectFile replaces the draft with f and starts building its preview.
// Non-image files are rejected with ErrInvalidFileType and leave the current draft alone
func (u *Uploader) SelectFile(f File) (tea.Cmd, error) {
	if u.uploading {
		return nil, nil
	}
	if !f.IsImage() {
		u.notifier.Notify(Error, msgNotAnImage)
		return nil, ErrInvalidFileType
	}

	u.seq++
	seq := u.seq
	file := f
	u.draft = &Draft{File: &file, DisplayName: f.Name}

	return func() tea.Msg {
		return PreviewReadyMsg{Seq: seq, DataURL: file.DataURL()}
	}, nil
}

// ConfirmUpload starts uploading the draft. It does nothing without a pending file or while an upload is running
func (u *Uploader) ConfirmUpload() tea.Cmd {
	if !u.CanConfirm() {
		return nil
	}
	u.uploading = true

	ctx, bucket, seq := u.ctx, u.bucket, u.seq
	file := *u.draft.File
	key := u.opts.KeyFunc(file.Name)
	opts := storage.UploadOptions{
		ContentType:         file.mediaType(),
		CacheControlSeconds: u.opts.CacheControlSeconds,
		Overwrite:           false,
	}

	return func() tea.Msg {
		err := bucket.Upload(ctx, key, file.Data, opts)
		return UploadResultMsg{
			Seq:    seq,
			Key:    key,
			Result: resultOf(Unit{}, collaboratorFailure("upload", err)),
		}
	}
}

// Cancel drops the draft unless it is being uploaded
func (u *Uploader) Cancel() {
	if u.uploading {
		return
	}
	u.draft = nil
	u.seq++
}

func (u *Uploader) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PreviewReadyMsg:
		if u.draft != nil && msg.Seq == u.seq {
			u.draft.PreviewDataURL = msg.DataURL
		}

	case UploadResultMsg:
		if !u.uploading || msg.Seq != u.seq {
			return nil
		}
		u.uploading = false

		if err := msg.Result.Err(); err != nil {
			u.notifier.Notify(Error, userMessage(err, msgUploadFailed))
			u.draft = nil
			return nil
		}

		u.notifier.Notify(Success, msgUploaded)
		if u.draft != nil {
			u.draft.File = nil
		}
		seq := msg.Seq
		return tea.Batch(
			emit(UploadCompleteMsg{Key: msg.Key}),
			tea.Tick(u.opts.ResetDelay, func(time.Time) tea.Msg {
				return DraftResetMsg{Seq: seq}
			}),
		)

	case DraftResetMsg:
		if u.draft != nil && u.draft.File == nil && msg.Seq == u.seq {
			u.draft = nil
		}
	}
	return nil
}

// Draft returns a copy of the current draft
func (u *Uploader) Draft() (Draft, bool) {
	if u.draft == nil {
		return Draft{}, false
	}
	return *u.draft, true
}

func (u *Uploader) Uploading() bool {
	return u.uploading
}

func (u *Uploader) CanConfirm() bool {
	return !u.uploading && u.draft != nil && u.draft.File != nil
}

// Uploaded reports whether the draft is showing a finished upload
func (u *Uploader) Uploaded() bool {
	return u.draft != nil && u.draft.File == nil && !u.uploading
}
