package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var ErrNotWAV = errors.New("not a RIFF/WAVE file")

// ParseWAV returns the format and sample data of a PCM WAV file
func ParseWAV(data []byte) (Format, []byte, error) {
	reader := bytes.NewReader(data)

	var header struct {
		RIFF [4]byte
		Size uint32
		WAVE [4]byte
	}
	if err := binary.Read(reader, binary.LittleEndian, &header); err != nil {
		return Format{}, nil, ErrNotWAV
	}
	if string(header.RIFF[:]) != "RIFF" || string(header.WAVE[:]) != "WAVE" {
		return Format{}, nil, ErrNotWAV
	}

	var format Format
	for {
		var chunk struct {
			ID   [4]byte
			Size uint32
		}
		if err := binary.Read(reader, binary.LittleEndian, &chunk); err != nil {
			if errors.Is(err, io.EOF) {
				return Format{}, nil, errors.New("wav has no data chunk")
			}
			return Format{}, nil, err
		}

		switch string(chunk.ID[:]) {
		case "fmt ":
			var fmtChunk struct {
				AudioFormat   uint16
				Channels      uint16
				SampleRate    uint32
				ByteRate      uint32
				BlockAlign    uint16
				BitsPerSample uint16
			}
			if err := binary.Read(reader, binary.LittleEndian, &fmtChunk); err != nil {
				return Format{}, nil, err
			}
			format = Format{
				SampleRate: int(fmtChunk.SampleRate),
				Channels:   int(fmtChunk.Channels),
				BitDepth:   int(fmtChunk.BitsPerSample),
			}
			if chunk.Size > 16 {
				if _, err := reader.Seek(int64(chunk.Size-16), io.SeekCurrent); err != nil {
					return Format{}, nil, err
				}
			}
		case "data":
			if format.SampleRate == 0 {
				return Format{}, nil, errors.New("wav data chunk before fmt chunk")
			}
			samples := make([]byte, chunk.Size)
			n, err := io.ReadFull(reader, samples)
			if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
				return Format{}, nil, err
			}
			return format, samples[:n], nil
		default:
			if _, err := reader.Seek(int64(chunk.Size), io.SeekCurrent); err != nil {
				return Format{}, nil, fmt.Errorf("skip %q chunk: %w", chunk.ID[:], err)
			}
		}
	}
}

// EncodeWAV wraps PCM samples in a WAV header
func EncodeWAV(format Format, pcm []byte) []byte {
	var buf bytes.Buffer
	blockAlign := format.Channels * format.BitDepth / 8

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVEfmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(format.Channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(format.SampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(format.SampleRate*blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(format.BitDepth))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}
