package scaffold

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/neovim/go-client/nvim"
)

// NvimWriter writes fills through nvim buffers so the editor's own undo
// history covers them. It attaches to a running instance when
// NVIM_LISTEN_ADDRESS is set, otherwise starts a headless one for the run.
type NvimWriter struct {
	v             *nvim.Nvim
	isSelfStarted bool
	cmd           *exec.Cmd
	socketPath    string
}

func NewNvimWriter() (*NvimWriter, error) {
	if addr := os.Getenv("NVIM_LISTEN_ADDRESS"); addr != "" {
		v, err := nvim.Dial(addr)
		if err == nil {
			return &NvimWriter{v: v}, nil
		}
	}

	tmpDir, err := os.MkdirTemp("", "scaffold-nvim-")
	if err != nil {
		return nil, err
	}
	socketPath := filepath.Join(tmpDir, "nvim.sock")

	cmd := exec.Command("nvim", "--headless", "--clean", "--listen", socketPath)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	for i := 0; i < 20; i++ {
		if _, err := os.Stat(socketPath); err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	v, err := nvim.Dial(socketPath)
	if err != nil {
		cmd.Process.Kill()
		return nil, err
	}

	w := &NvimWriter{v: v, isSelfStarted: true, cmd: cmd, socketPath: socketPath}
	w.configureTempInstance()
	return w, nil
}

func (w *NvimWriter) configureTempInstance() {
	b := w.v.NewBatch()
	b.Command("set noswapfile")
	b.Execute()
}

func (w *NvimWriter) Close() {
	if w.v != nil {
		w.v.Close()
	}
	if w.isSelfStarted && w.cmd != nil && w.cmd.Process != nil {
		w.cmd.Process.Kill()
		w.cmd.Wait()
		os.RemoveAll(filepath.Dir(w.socketPath))
	}
}

func (w *NvimWriter) WriteFile(path string, content string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	byteContent := make([][]byte, len(lines))
	for i, s := range lines {
		byteContent[i] = []byte(s)
	}

	b := w.v.NewBatch()
	b.Command(fmt.Sprintf("edit %s", absPath))
	b.SetBufferLines(0, 0, -1, true, byteContent)
	b.Command("write")
	if err := b.Execute(); err != nil {
		return fmt.Errorf("nvim write failed for %s: %w", path, err)
	}
	return nil
}
