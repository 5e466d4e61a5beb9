package cli

import (
	"cipherstudio/internal/kvstore"
	"cipherstudio/internal/workspace"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const errFailedOpenLocalStoreFmt = "failed to open local store: %w"

type clientWorkspace struct {
	policy *workspace.SyncPolicy
	remote *workspace.RemoteStore
	kv     kvstore.Store
}

func (w *clientWorkspace) Close() {
	if err := w.kv.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close local store")
	}
}

func (a *App) openWorkspace(ctx context.Context) (*clientWorkspace, error) {
	kv, err := kvstore.Open(ctx, a.cfg.Client.LocalStore)
	if err != nil {
		return nil, fmt.Errorf(errFailedOpenLocalStoreFmt, err)
	}

	w := &clientWorkspace{kv: kv}
	local := workspace.NewLocalStore(kv)

	if a.offline {
		w.policy = workspace.NewSyncPolicy(local, nil)
		return w, nil
	}

	w.remote = workspace.NewRemoteStore(a.cfg.Client.APIURL, a.cfg.Client.HTTPTimeout)
	w.policy = workspace.NewSyncPolicy(local, w.remote)
	log.Debug().Str("api_url", a.cfg.Client.APIURL).Str("local_store", a.cfg.Client.LocalStore).Msg("workspace opened")

	return w, nil
}

// editProject loads a project into a session, applies edit and persists the
// result through the auto-saver, or directly when auto-save is off.
func (a *App) editProject(ctx context.Context, id string, edit func(*workspace.Session) error) error {
	w, err := a.openWorkspace(ctx)
	if err != nil {
		return err
	}
	defer w.Close()

	p, err := w.policy.Load(ctx, id)
	if err != nil {
		return err
	}

	session := workspace.NewSession(p, w.policy)

	if !a.cfg.Client.AutoSave {
		if err := edit(session); err != nil {
			return err
		}
		return session.Save(ctx)
	}

	saver := workspace.NewAutoSaver(ctx, session, a.cfg.Client.AutoSaveDelay)
	defer saver.Stop()

	if err := edit(session); err != nil {
		return err
	}
	return saver.Flush(ctx)
}
