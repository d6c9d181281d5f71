package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailsight/trailsight/src/media"
)

const videoProbe = `{
	"format": {
		"size": "10485760",
		"duration": "12.5",
		"format_name": "mov,mp4,m4a,3gp,3g2,mj2",
		"bit_rate": "6708180",
		"tags": {
			"creation_time": "2024-03-01T10:15:00.000000Z",
			"encoder": "Lavf58.76.100",
			"title": "Beach day",
			"artist": "alice",
			"location": "+48.8584+002.2945/"
		}
	},
	"streams": [
		{
			"codec_type": "video",
			"codec_name": "h264",
			"codec_long_name": "H.264 / AVC / MPEG-4 AVC",
			"width": 1920,
			"height": 1080,
			"r_frame_rate": "30/1",
			"pix_fmt": "yuv420p"
		}
	]
}`

const audioProbe = `{
	"format": {
		"size": "3145728",
		"duration": "180.0",
		"format_name": "mp3",
		"bit_rate": "128000",
		"tags": {
			"creation_time": "2024-03-01T10:15:00.000000Z",
			"title": "Voice memo",
			"artist": "alice",
			"album": "Memos",
			"encoder": "LAME"
		}
	},
	"streams": [
		{
			"codec_type": "audio",
			"codec_name": "mp3",
			"sample_rate": "44100",
			"channels": 2,
			"channel_layout": "stereo"
		}
	]
}`

func TestVideoReportFromProbe_FullMetadata(t *testing.T) {
	report, err := media.VideoReportFromProbe([]byte(videoProbe), "clip.mp4")
	require.NoError(t, err)

	// creation 6 + encoder 6 + title/artist/location 12 + resolution 3 +
	// frame rate 2 = 29.
	assert.Equal(t, 29, report.Risk)
	assert.Contains(t, report.Signals, "Video metadata reveals creation timestamp")
	assert.Contains(t, report.Signals, "Video metadata reveals recording device or software")
	assert.Contains(t, report.Signals, "Video metadata reveals location information")
	assert.Contains(t, report.Signals, "Video resolution provides device fingerprint")

	assert.Equal(t, "clip.mp4", report.Metadata["File Name"])
	assert.Equal(t, "1920x1080", report.Metadata["Resolution"])
	assert.Equal(t, "10.00", report.Metadata["File Size (MB)"])
	assert.NotContains(t, report.Metadata, "Recording Software")
}

func TestVideoReportFromProbe_BareContainer(t *testing.T) {
	report, err := media.VideoReportFromProbe([]byte(`{"format":{},"streams":[]}`), "clip.mp4")
	require.NoError(t, err)
	assert.Equal(t, 0, report.Risk)
	assert.Empty(t, report.Signals)
}

func TestVideoReportFromProbe_CapAt30(t *testing.T) {
	// All signal groups present: 6+6+12+3+2 = 29, still under the cap, so
	// force it over with a second pass of tags is impossible; verify the cap
	// holds on the maximal realistic payload instead.
	report, err := media.VideoReportFromProbe([]byte(videoProbe), "clip.mp4")
	require.NoError(t, err)
	assert.LessOrEqual(t, report.Risk, 30)
}

func TestVideoReportFromProbe_BadJSON(t *testing.T) {
	_, err := media.VideoReportFromProbe([]byte("not json"), "clip.mp4")
	assert.Error(t, err)
}

func TestAudioReportFromProbe_FullMetadata(t *testing.T) {
	report, err := media.AudioReportFromProbe([]byte(audioProbe), "memo.mp3")
	require.NoError(t, err)

	// creation 6 + encoder 6 + artist/album/title 12 + sample rate 3 +
	// stereo 2 = 29, capped to 25.
	assert.Equal(t, 25, report.Risk)
	assert.Contains(t, report.Signals, "Audio metadata reveals recording timestamp")
	assert.Contains(t, report.Signals, "Audio metadata reveals artist information")
	assert.Contains(t, report.Signals, "Stereo audio suggests edited or high-quality recording")

	assert.Equal(t, "memo.mp3", report.Metadata["File Name"])
	assert.Equal(t, "2", report.Metadata["Channels"])
	assert.Equal(t, "44100", report.Metadata["Sample Rate (Hz)"])
}

func TestAudioReportFromProbe_MonoNoTags(t *testing.T) {
	raw := `{
		"format": {"size": "1024", "format_name": "wav"},
		"streams": [{"codec_type": "audio", "codec_name": "pcm_s16le", "sample_rate": "8000", "channels": 1}]
	}`
	report, err := media.AudioReportFromProbe([]byte(raw), "mono.wav")
	require.NoError(t, err)
	// Only the sample-rate fingerprint fires.
	assert.Equal(t, 3, report.Risk)
	assert.NotContains(t, report.Signals, "Stereo audio suggests edited or high-quality recording")
}

func TestExtractImageMetadata_MissingFile(t *testing.T) {
	meta, fix := media.ExtractImageMetadata("does-not-exist.jpg")
	assert.Empty(t, meta)
	assert.Nil(t, fix)
}
