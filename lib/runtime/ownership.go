// Copyright 2026 The localmx Authors
// SPDX-License-Identifier: Apache-2.0

package runtime

import (
	"context"
	"fmt"
)

// FixOwnership normalizes a bind-mounted data directory so the
// containerized service (running as uid inside the container) can read
// and write it: directories 775, files 664, everything owned by uid.
// Idempotent; any failure is fatal to the caller.
//
// Under rootless podman the host-side chown has to happen inside the
// user namespace, where uid maps to the right subordinate id, so the
// work runs through "podman unshare". Under docker this is a no-op:
// the container entrypoints run as in-container root and chown their
// own data directories, and a host-side chown to the service uid
// would need root anyway.
func (r *Runtime) FixOwnership(ctx context.Context, dir string, uid int) error {
	if !r.Podman() {
		return nil
	}
	r.logger.Debug("fixing bind mount ownership", "dir", dir, "uid", uid)
	script := fmt.Sprintf(
		"chown -R %d:%d %q && find %q -type d -exec chmod 775 {} + && find %q -type f -exec chmod 664 {} +",
		uid, uid, dir, dir, dir)
	return r.run(ctx, "unshare", "sh", "-c", script)
}
