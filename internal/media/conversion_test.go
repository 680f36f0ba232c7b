// filepath: internal/media/conversion_test.go
package media

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFfprobeOutputParsesFirstVideoStream(t *testing.T) {
	raw := []byte(`{
		"streams": [
			{"codec_type": "audio", "width": 0, "height": 0},
			{"codec_type": "video", "width": 1920, "height": 1080}
		]
	}`)

	var out ffprobeOutput
	assert.NoError(t, json.Unmarshal(raw, &out))

	var found *ffprobeStream
	for i := range out.Streams {
		if out.Streams[i].CodecType == "video" && out.Streams[i].Width > 0 {
			found = &out.Streams[i]
			break
		}
	}
	if assert.NotNil(t, found) {
		assert.Equal(t, 1920, found.Width)
		assert.Equal(t, 1080, found.Height)
	}
}

func TestProbeVideoDimensionsErrorsWithoutFFprobe(t *testing.T) {
	ffprobePath = "/definitely/not/a/real/ffprobe"
	_, err := ProbeVideoDimensions("does-not-matter.mp4")
	assert.Error(t, err)
}
