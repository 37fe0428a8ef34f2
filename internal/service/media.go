package service

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/onurcolak/whatsapp-session-bridge/internal/domain"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/sanitize"
	"github.com/onurcolak/whatsapp-session-bridge/pkg/storage"
)

var allowedMediaPrefixes = []string{
	"image/", "video/", "audio/", "application/pdf",
	"application/vnd.openxmlformats", "application/msword",
	"application/vnd.ms-excel", "text/plain",
}

var (
	oggSignature  = []byte("OggS")
	webmSignature = []byte{0x1a, 0x45, 0xdf, 0xa3}
)

const VoiceNoteCaption = "🎤 Voice message"

type UploadResult struct {
	URL      string `json:"fileUrl"`
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype"`
	Size     int    `json:"size"`
}

// MediaService validates, decodes and stores media attachments.
type MediaService struct {
	store    storage.BlobStore
	maxBytes int
}

func NewMediaService(store storage.BlobStore, maxBytes int) *MediaService {
	return &MediaService{store: store, maxBytes: maxBytes}
}

// Decode returns the raw bytes of a base64 payload. Data URL prefixes are accepted.
func (m *MediaService) Decode(data string) ([]byte, error) {
	if i := strings.Index(data, ";base64,"); i >= 0 && strings.HasPrefix(data, "data:") {
		data = data[i+len(";base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 media data", domain.ErrInvalidInput)
	}
	if m.maxBytes > 0 && len(raw) > m.maxBytes {
		return nil, fmt.Errorf("%w: file too large, maximum size is %dMB", domain.ErrInvalidInput, m.maxBytes/(1024*1024))
	}
	return raw, nil
}

// Upload validates an attachment chosen by a user and stores it.
func (m *MediaService) Upload(ctx context.Context, data, filename, mimetype string) (*UploadResult, error) {
	raw, err := m.Decode(data)
	if err != nil {
		return nil, err
	}
	if !mediaTypeAllowed(mimetype) {
		return nil, fmt.Errorf("%w: file type %s not supported", domain.ErrInvalidInput, mimetype)
	}

	name := sanitize.Filename(filename, "upload")
	url, err := m.store.Save(ctx, name, raw)
	if err != nil {
		return nil, err
	}

	return &UploadResult{URL: url, Filename: name, Mimetype: mimetype, Size: len(raw)}, nil
}

// Store writes a gateway media payload and returns its URL.
func (m *MediaService) Store(ctx context.Context, p *domain.MediaPayload) (string, error) {
	raw, err := m.Decode(p.Data)
	if err != nil {
		return "", err
	}

	name := p.Filename
	if name == "" {
		name = "whatsapp_" + randomHex(4)
	}
	return m.store.Save(ctx, sanitize.Filename(name, "whatsapp_media"), raw)
}

// VoiceNote wraps recorded audio into a media payload, detecting the
// container from its signature. OGG/Opus is assumed when unrecognised.
func (m *MediaService) VoiceNote(audio string) (*domain.MediaPayload, error) {
	raw, err := m.Decode(audio)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty audio", domain.ErrInvalidInput)
	}

	mimetype, ext := SniffAudio(raw)
	return &domain.MediaPayload{
		Data:     base64.StdEncoding.EncodeToString(raw),
		Filename: "voice_note_" + randomHex(4) + "." + ext,
		Mimetype: mimetype,
	}, nil
}

func SniffAudio(data []byte) (mimetype, ext string) {
	switch {
	case bytes.HasPrefix(data, webmSignature):
		return "audio/webm; codecs=opus", "webm"
	case bytes.HasPrefix(data, oggSignature):
		return "audio/ogg; codecs=opus", "ogg"
	default:
		return "audio/ogg; codecs=opus", "ogg"
	}
}

func mediaTypeAllowed(mimetype string) bool {
	for _, prefix := range allowedMediaPrefixes {
		if strings.HasPrefix(mimetype, prefix) {
			return true
		}
	}
	return false
}

func randomHex(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
