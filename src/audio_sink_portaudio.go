package dsdneo

import "github.com/gordonklaus/portaudio"

// PortaudioSink is the default local audio output backend, wrapping
// portaudio's blocking stream the same way the teacher drives its sound
// card output, adapted from direct PCM writes to this decoder's stereo
// mixer.
type PortaudioSink struct {
	stream *portaudio.Stream
	mixer  *StereoMixer
	buf    []int16
}

// NewPortaudioSink opens the default output device at the given sample
// rate and frames-per-buffer, pulling mixed audio from mixer on each
// callback.
func NewPortaudioSink(mixer *StereoMixer, sampleRate float64, framesPerBuffer int) (*PortaudioSink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	s := &PortaudioSink{mixer: mixer, buf: make([]int16, framesPerBuffer*2)}
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, framesPerBuffer, s.callback)
	if err != nil {
		return nil, err
	}
	s.stream = stream
	return s, nil
}

func (s *PortaudioSink) callback(out []int16) {
	n := s.mixer.MixOne(s.buf)
	for i := 0; i < len(out); i++ {
		if i < n*2 {
			out[i] = s.buf[i]
		} else {
			out[i] = 0
		}
	}
}

// Start begins audio playback.
func (s *PortaudioSink) Start() error { return s.stream.Start() }

// Close stops playback and releases portaudio resources.
func (s *PortaudioSink) Close() error {
	if err := s.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}
