package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tactics-server/internal/domain"
)

const (
	MagicHeader string = `TBRL` // 4 байта: Tactics Battle Record Log
	Version1    uint32 = 1
)

// FileHeader — представление заголовка файла в памяти.
// binary.Write пишет её целиком: тут нет слайсов и строк, только числа и массивы.
type FileHeader struct {
	Magic      [4]byte // 4 байта
	Version    uint32  // 4 байта
	StartedAt  int64   // 8 байт
	EntryCount int32   // 4 байта
}

// EntryHeader — заголовок каждой записи команды.
type EntryHeader struct {
	Tick       int32  // 4
	Turn       int32  // 4
	ActionType uint8  // 1
	TokenLen   uint8  // 1
	PayloadLen uint16 // 2
}

// JournalService сохраняет и загружает журналы боёв.
type JournalService struct {
	SaveDir string
}

func NewJournalService(dir string) *JournalService {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &JournalService{SaveDir: dir}
}

// Save пишет журнал в файл battle_<startedAt>.tbrl.
func (s *JournalService) Save(j *Journal) (string, error) {
	filename := fmt.Sprintf("battle_%d.tbrl", j.StartedAt)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := writeBinary(f, j); err != nil {
		return "", err
	}
	return path, nil
}

func writeBinary(w io.Writer, j *Journal) error {
	header := FileHeader{
		Version:    Version1,
		StartedAt:  j.StartedAt,
		EntryCount: int32(len(j.Entries)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range j.Entries {
		tokenBytes := []byte(e.Token)
		if len(tokenBytes) > 255 {
			return fmt.Errorf("token too long: %d", len(tokenBytes))
		}
		if len(e.Payload) > 65535 {
			return fmt.Errorf("payload too long: %d", len(e.Payload))
		}

		entryHeader := EntryHeader{
			Tick:       int32(e.Tick),
			Turn:       int32(e.Turn),
			ActionType: uint8(e.Action),
			TokenLen:   uint8(len(tokenBytes)),
			PayloadLen: uint16(len(e.Payload)),
		}

		if err := binary.Write(w, binary.LittleEndian, &entryHeader); err != nil {
			return err
		}
		if _, err := w.Write(tokenBytes); err != nil {
			return err
		}
		if len(e.Payload) > 0 {
			if _, err := w.Write(e.Payload); err != nil {
				return err
			}
		}
	}

	return nil
}

// Load читает журнал из файла.
func (s *JournalService) Load(path string) (*Journal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readBinary(f)
}

func readBinary(r io.Reader) (*Journal, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("not a battle record file (magic %q)", header.Magic)
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("unsupported record version %d", header.Version)
	}

	j := NewJournal(header.StartedAt)
	for i := int32(0); i < header.EntryCount; i++ {
		var eh EntryHeader
		if err := binary.Read(r, binary.LittleEndian, &eh); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		token := make([]byte, eh.TokenLen)
		if _, err := io.ReadFull(r, token); err != nil {
			return nil, fmt.Errorf("entry %d token: %w", i, err)
		}

		var payload []byte
		if eh.PayloadLen > 0 {
			payload = make([]byte, eh.PayloadLen)
			if _, err := io.ReadFull(r, payload); err != nil {
				return nil, fmt.Errorf("entry %d payload: %w", i, err)
			}
		}

		j.Entries = append(j.Entries, JournalEntry{
			Tick:    int(eh.Tick),
			Turn:    int(eh.Turn),
			Action:  domain.ActionType(eh.ActionType),
			Token:   string(token),
			Payload: payload,
		})
	}

	return j, nil
}
