package sioclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/zweieuro/go-sioclient/internal/httptransport"
)

// handshakeURL builds the first handshake GET URL (no session id yet),
// matching spec.md §6's template exactly:
//
//	http://{address}{path}/?EIO={ver}&transport=polling&t={token}
func handshakeURL(s *Session) string {
	return fmt.Sprintf("http://%s%s/?EIO=%d&transport=polling&t=%s",
		s.serverAddress, s.sioURLPath, s.eioVersion, randomToken(TokenLength))
}

// pollingURL builds the GET/POST URL used once a session id exists:
// the handshake template plus &sid={sid}. Returns an error if no
// session id has been negotiated yet.
func pollingURL(s *Session) (string, error) {
	if s.serverSessionID == "" {
		return "", newErr(KindState, "pollingURL", "no server session id, handshake not completed")
	}
	return fmt.Sprintf("http://%s%s/?EIO=%d&transport=polling&t=%s&sid=%s",
		s.serverAddress, s.sioURLPath, s.eioVersion, randomToken(TokenLength), s.serverSessionID), nil
}

// PollingURL returns the URL a long-poll GET or POST would currently use
// for s, or an error if the session has not completed its handshake. It
// corresponds to alloc_polling_get_url from the original. Caller must
// hold s's lock (as returned by Manager.GetAndLock).
func (s *Session) PollingURL() (string, error) {
	return pollingURL(s)
}

// doRequest performs req against h's Doer (creating one from factory if
// this is the handle's first use) and, on a 200 response with a
// non-empty body, frames the body into a Batch via ParseBatch. It folds
// together what the original split across an HTTP client handle plus a
// static event-handler accumulator: here the accumulator is just the
// local response body, read directly from the Go standard library's
// io.Reader rather than assembled callback-by-callback.
func doRequest(ctx context.Context, h *transportHandle, factory func() httptransport.Doer, req *http.Request, sep byte) (Batch, int, error) {
	if h.doer == nil {
		h.doer = factory()
	}
	req = req.WithContext(ctx)

	resp, err := h.doer.Do(req)
	if err != nil {
		return nil, 0, wrapErr(KindTransport, "doRequest", "http request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, newErr(KindTransport, "doRequest", fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, wrapErr(KindTransport, "doRequest", "reading response body", err)
	}
	if len(body) == 0 {
		return nil, resp.StatusCode, newErr(KindTransport, "doRequest", "empty response body")
	}

	batch, err := ParseBatch(body, sep)
	if err != nil {
		return nil, resp.StatusCode, wrapErr(KindProtocol, "doRequest", "framing response body", err)
	}
	return batch, resp.StatusCode, nil
}

// pollingGet issues the long-poll GET against s's poll handle.
func pollingGet(ctx context.Context, s *Session) (Batch, error) {
	url, err := pollingURL(s)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, wrapErr(KindTransport, "pollingGet", "building request", err)
	}

	batch, _, err := doRequest(ctx, s.poll, s.pollDoerFactory, req, s.recordSeparator)
	return batch, err
}

// pollingPost sends packet via POST against s's post handle. It expects
// exactly one EIOKindOkServer packet in the response; any other shape is
// logged and swallowed rather than returned, matching spec.md §4.4 ("any
// other shape logs an error but does not propagate one").
func pollingPost(ctx context.Context, s *Session, packet *Packet) error {
	url, err := pollingURL(s)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(packet.Data))
	if err != nil {
		return wrapErr(KindTransport, "pollingPost", "building request", err)
	}
	req.Header.Set("Content-Type", "text/plain;charset=UTF-8")
	req.Header.Set("Accept", "*/*")

	batch, _, err := doRequest(ctx, s.post, s.postDoerFactory, req, s.recordSeparator)

	if s.rebuildPostClient {
		s.post.doer = nil
	}

	if err != nil {
		return err
	}

	if len(batch) != 1 || batch[0].EIOKind != EIOKindOkServer {
		s.log().Error("unexpected response to POST", "len", len(batch))
	}
	return nil
}
