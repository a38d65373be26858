package session

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/certs"
)

// linkTimeout bounds how long a browser linking session may stay open.
const linkTimeout = 10 * time.Minute

// BrowserConfig configures the local Link page server.
type BrowserConfig struct {
	Addr      string // listen address, default ":8080"
	HTTPS     bool   // OAuth banks require HTTPS for the Link page
	CertDir   string // where the self-signed certificate lives
	NoBrowser bool   // print the URL instead of opening a browser
}

// BrowserLinkHandler implements LinkHandler by serving the Plaid Link
// page from a local web server and waiting for its single terminal
// notification. It is the application's stand-in for a mobile Link SDK.
type BrowserLinkHandler struct {
	cfg    BrowserConfig
	logger *slog.Logger

	mu     sync.Mutex
	server *http.Server
}

// NewBrowserLinkHandler creates a handler with the given configuration.
func NewBrowserLinkHandler(cfg BrowserConfig) *BrowserLinkHandler {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return &BrowserLinkHandler{
		cfg:    cfg,
		logger: slog.Default().With("component", "link"),
	}
}

// linkCallback is the payload posted back by the Link page. Either
// PublicToken or Exit is set, mirroring LinkResult.
type linkCallback struct {
	PublicToken string `json:"public_token"`
	Exit        *struct {
		ErrorCode    string `json:"error_code"`
		ErrorMessage string `json:"error_message"`
		Institution  string `json:"institution"`
	} `json:"exit"`
}

// Open implements LinkHandler.Open. It serves the Link page, blocks until
// the page reports success or exit, and shuts the server down.
func (h *BrowserLinkHandler) Open(ctx context.Context, linkToken string) (LinkResult, error) {
	resultChan := make(chan LinkResult, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprintf(w, linkPageHTML, linkToken)
	})
	mux.HandleFunc("/link/result", func(w http.ResponseWriter, r *http.Request) {
		var cb linkCallback
		if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		result := LinkResult{PublicToken: cb.PublicToken}
		if cb.PublicToken == "" {
			exit := &ExitInfo{}
			if cb.Exit != nil {
				exit.ErrorCode = cb.Exit.ErrorCode
				exit.ErrorMessage = cb.Exit.ErrorMessage
				exit.Institution = cb.Exit.Institution
			}
			result.Exit = exit
		}

		// First terminal notification wins; the page cannot double-fire
		// into the session.
		select {
		case resultChan <- result:
		default:
		}

		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})

	server := &http.Server{
		Addr:              h.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	h.mu.Lock()
	h.server = server
	h.mu.Unlock()

	scheme := "http"
	if h.cfg.HTTPS {
		scheme = "https"

		certManager := certs.NewFileManager(h.cfg.CertDir)
		cert, err := certManager.GetOrCreateCertificate()
		if err != nil {
			return LinkResult{}, fmt.Errorf("failed to get/create certificate: %w", err)
		}
		server.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
	}

	go func() {
		var err error
		if h.cfg.HTTPS {
			err = server.ListenAndServeTLS("", "")
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("failed to start link server: %w", err)
		}
	}()

	url := fmt.Sprintf("%s://localhost%s", scheme, h.cfg.Addr)
	h.logger.Info("Opening your browser to connect a bank account...")
	h.logger.Info("If the browser doesn't open, visit:", "url", url)
	if !h.cfg.NoBrowser {
		openBrowser(url)
	}

	defer h.Destroy()

	select {
	case result := <-resultChan:
		return result, nil
	case err := <-errChan:
		return LinkResult{}, err
	case <-ctx.Done():
		return LinkResult{}, ctx.Err()
	case <-time.After(linkTimeout):
		return LinkResult{}, fmt.Errorf("timeout waiting for account connection")
	}
}

// Destroy implements LinkHandler.Destroy. Safe to call repeatedly and on
// a handler that was never opened.
func (h *BrowserLinkHandler) Destroy() {
	h.mu.Lock()
	server := h.server
	h.server = nil
	h.mu.Unlock()

	if server == nil {
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
}

// openBrowser tries to open the URL in the default browser.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	}
	if err != nil {
		slog.Debug("Failed to open browser", "error", err)
	}
}

// Ensure BrowserLinkHandler implements LinkHandler.
var _ LinkHandler = (*BrowserLinkHandler)(nil)

const linkPageHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Connect Your Bank Account - BiggerNumbers</title>
    <script src="https://cdn.plaid.com/link/v2/stable/link-initialize.js"></script>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background-color: #f5f5f5; }
        .container { text-align: center; background: white; padding: 40px; border-radius: 8px;
                    box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
        h1 { color: #333; margin-bottom: 20px; }
        button { background-color: #4CAF50; color: white; padding: 12px 24px;
                font-size: 16px; border: none; border-radius: 4px; cursor: pointer; }
        button:hover { background-color: #45a049; }
        .error { color: #d32f2f; margin-top: 20px; }
        .success { color: #388e3c; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Connect Your Bank Account</h1>
        <p>Click the button below to securely connect your bank account.</p>
        <button id="link-button">Connect Bank Account</button>
        <div id="message"></div>
    </div>

    <script>
    let finished = false;

    function report(body, message, cssClass) {
        if (finished) return;
        finished = true;
        document.getElementById('message').innerHTML =
            '<div class="' + cssClass + '">' + message + '</div>';
        fetch('/link/result', {
            method: 'POST',
            headers: { 'Content-Type': 'application/json' },
            body: JSON.stringify(body)
        }).catch(function (error) {
            document.getElementById('message').innerHTML =
                '<div class="error">Network error: ' + error + '</div>';
        });
    }

    const linkHandler = Plaid.create({
        token: '%s',
        onSuccess: (public_token, metadata) => {
            report({ public_token: public_token },
                'Account connected. You can close this window and return to the terminal.',
                'success');
        },
        onExit: (err, metadata) => {
            report({
                exit: {
                    error_code: err ? err.error_code : '',
                    error_message: err ? err.error_message : '',
                    institution: metadata && metadata.institution ? metadata.institution.name : ''
                }
            }, 'Linking did not complete. You can close this window.', 'error');
        }
    });

    document.getElementById('link-button').onclick = () => {
        linkHandler.open();
    };
    </script>
</body>
</html>`
