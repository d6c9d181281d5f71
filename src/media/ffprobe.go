package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/trailsight/trailsight/src/evidence"
)

const (
	maxVideoRisk = 30
	maxAudioRisk = 25
)

type probeOutput struct {
	Format struct {
		Size       string            `json:"size"`
		Duration   string            `json:"duration"`
		FormatName string            `json:"format_name"`
		BitRate    string            `json:"bit_rate"`
		Tags       map[string]string `json:"tags"`
	} `json:"format"`
	Streams []probeStream `json:"streams"`
}

type probeStream struct {
	CodecType        string `json:"codec_type"`
	CodecName        string `json:"codec_name"`
	CodecLongName    string `json:"codec_long_name"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	RFrameRate       string `json:"r_frame_rate"`
	PixFmt           string `json:"pix_fmt"`
	BitsPerRawSample string `json:"bits_per_raw_sample"`
	SampleRate       string `json:"sample_rate"`
	Channels         int    `json:"channels"`
	ChannelLayout    string `json:"channel_layout"`
	BitsPerSample    int    `json:"bits_per_sample"`
}

// AnalyzeVideo extracts video metadata via ffprobe and scores identity,
// timeline, and device leakage. On any extraction failure it returns zero
// risk with an explanatory evidence string.
func AnalyzeVideo(ctx context.Context, path string) evidence.MediaReport {
	raw, err := runFFprobe(ctx, path)
	if err != nil {
		return failedReport("Video uploaded, but metadata extraction failed")
	}
	report, err := VideoReportFromProbe(raw, filepath.Base(path))
	if err != nil {
		return failedReport("Video uploaded, but metadata extraction failed")
	}
	return report
}

// AnalyzeAudio is the audio counterpart of AnalyzeVideo.
func AnalyzeAudio(ctx context.Context, path string) evidence.MediaReport {
	raw, err := runFFprobe(ctx, path)
	if err != nil {
		return failedReport("Audio uploaded, but metadata extraction failed")
	}
	report, err := AudioReportFromProbe(raw, filepath.Base(path))
	if err != nil {
		return failedReport("Audio uploaded, but metadata extraction failed")
	}
	return report
}

// VideoReportFromProbe scores a raw ffprobe JSON payload for a video file.
func VideoReportFromProbe(raw []byte, filename string) (evidence.MediaReport, error) {
	var out probeOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return evidence.MediaReport{}, err
	}

	stream := firstStream(out.Streams, "video")
	tags := out.Format.Tags

	meta := map[string]string{
		"File Name":        filename,
		"File Size (MB)":   sizeMB(out.Format.Size),
		"Duration (s)":     out.Format.Duration,
		"Container Format": out.Format.FormatName,
		"Overall Bitrate":  out.Format.BitRate,
	}
	if stream != nil {
		meta["Video Codec"] = stream.CodecName
		meta["Codec Description"] = stream.CodecLongName
		if stream.Width > 0 {
			meta["Resolution"] = fmt.Sprintf("%dx%d", stream.Width, stream.Height)
		}
		meta["Frame Rate"] = stream.RFrameRate
		meta["Pixel Format"] = stream.PixFmt
		meta["Bit Depth"] = stream.BitsPerRawSample
	}
	meta["Creation Time"] = tags["creation_time"]
	meta["Encoder"] = tags["encoder"]
	meta["Recording Software"] = tags["software"]
	meta["Title"] = tags["title"]
	meta["Artist"] = tags["artist"]
	meta["Location"] = tags["location"]
	pruneEmpty(meta)

	risk := 0
	var signals []string

	if meta["Creation Time"] != "" {
		risk += 6
		signals = append(signals, "Video metadata reveals creation timestamp")
	}
	if meta["Encoder"] != "" || meta["Recording Software"] != "" {
		risk += 6
		signals = append(signals, "Video metadata reveals recording device or software")
	}
	for _, field := range []string{"Title", "Artist", "Location"} {
		if meta[field] != "" {
			risk += 4
			signals = append(signals, fmt.Sprintf("Video metadata reveals %s information", strings.ToLower(field)))
		}
	}
	if meta["Resolution"] != "" {
		risk += 3
		signals = append(signals, "Video resolution provides device fingerprint")
	}
	if meta["Frame Rate"] != "" {
		risk += 2
		signals = append(signals, "Video frame rate provides technical fingerprint")
	}

	// Video is high signal but must not dominate the fused score.
	if risk > maxVideoRisk {
		risk = maxVideoRisk
	}

	return evidence.MediaReport{
		Risk:     risk,
		Signals:  signals,
		Metadata: meta,
		Evidence: "Video analysis extracted embedded metadata, device fingerprints, timeline indicators, and identity-linked tags.",
	}, nil
}

// AudioReportFromProbe scores a raw ffprobe JSON payload for an audio file.
func AudioReportFromProbe(raw []byte, filename string) (evidence.MediaReport, error) {
	var out probeOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return evidence.MediaReport{}, err
	}

	stream := firstStream(out.Streams, "audio")
	tags := out.Format.Tags

	meta := map[string]string{
		"File Name":        filename,
		"File Size (MB)":   sizeMB(out.Format.Size),
		"Duration (s)":     out.Format.Duration,
		"Container Format": out.Format.FormatName,
		"Overall Bitrate":  out.Format.BitRate,
	}
	channels := 0
	if stream != nil {
		meta["Audio Codec"] = stream.CodecName
		meta["Codec Description"] = stream.CodecLongName
		meta["Sample Rate (Hz)"] = stream.SampleRate
		meta["Channel Layout"] = stream.ChannelLayout
		if stream.Channels > 0 {
			meta["Channels"] = strconv.Itoa(stream.Channels)
		}
		if stream.BitsPerSample > 0 {
			meta["Bits Per Sample"] = strconv.Itoa(stream.BitsPerSample)
		}
		channels = stream.Channels
	}
	meta["Title"] = tags["title"]
	meta["Artist"] = tags["artist"]
	meta["Album"] = tags["album"]
	meta["Author"] = tags["author"]
	meta["Creation Time"] = tags["creation_time"]
	meta["Encoder"] = tags["encoder"]
	meta["Recording Software"] = tags["software"]
	pruneEmpty(meta)

	risk := 0
	var signals []string

	if meta["Creation Time"] != "" {
		risk += 6
		signals = append(signals, "Audio metadata reveals recording timestamp")
	}
	if meta["Encoder"] != "" || meta["Recording Software"] != "" {
		risk += 6
		signals = append(signals, "Audio metadata reveals recording device or software")
	}
	for _, field := range []string{"Artist", "Author", "Album", "Title"} {
		if meta[field] != "" {
			risk += 4
			signals = append(signals, fmt.Sprintf("Audio metadata reveals %s information", strings.ToLower(field)))
		}
	}
	if meta["Sample Rate (Hz)"] != "" {
		risk += 3
		signals = append(signals, "Audio technical fingerprint detected")
	}
	if channels >= 2 {
		risk += 2
		signals = append(signals, "Stereo audio suggests edited or high-quality recording")
	}

	if risk > maxAudioRisk {
		risk = maxAudioRisk
	}

	return evidence.MediaReport{
		Risk:     risk,
		Signals:  signals,
		Metadata: meta,
		Evidence: "Audio analysis extracted embedded metadata, technical fingerprints, and potential identity indicators.",
	}, nil
}

func runFFprobe(ctx context.Context, path string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	return cmd.Output()
}

func firstStream(streams []probeStream, codecType string) *probeStream {
	for i := range streams {
		if streams[i].CodecType == codecType {
			return &streams[i]
		}
	}
	return nil
}

func failedReport(explanation string) evidence.MediaReport {
	return evidence.MediaReport{
		Risk:     0,
		Signals:  []string{},
		Metadata: map[string]string{},
		Evidence: explanation,
	}
}

func sizeMB(size string) string {
	bytes, err := strconv.ParseInt(size, 10, 64)
	if err != nil || bytes <= 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", float64(bytes)/(1024*1024))
}

func pruneEmpty(meta map[string]string) {
	for k, v := range meta {
		if v == "" {
			delete(meta, k)
		}
	}
}

