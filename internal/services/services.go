// Package services contains the document-QA business logic: the credential
// store, the document cache, the session gate, the pipeline that composes
// them, and the message-level facade used by the HTTP and CLI front ends.
package services

import (
	"fmt"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/dbx"
)

// storeErr marks connectivity failures as common.ErrorStoreUnavailable and
// leaves every other error as is.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if dbx.IsUnavailable(err) {
		return fmt.Errorf("%w: %v", common.ErrorStoreUnavailable, err)
	}
	return err
}
