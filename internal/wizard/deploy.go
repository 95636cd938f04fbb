// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/cloud-exit/tokensim/internal/state"
)

// DeployLines returns the scripted deployment log for the current state.
// Nothing is deployed; the lines only narrate what a real issuance would do.
func DeployLines(sn state.Snapshot) []string {
	standard := sn[state.ProTokenDesign].String("tokenStandard")
	if standard == "" {
		standard = "ERC-3643"
	}
	chain := sn[state.ProTokenDesign].String("chain")
	if chain == "" {
		chain = "Polygon"
	}
	form := sn[state.Jurisdiction].String("spvLegalForm")
	if form == "" {
		form = "SPV"
	}
	return []string{
		fmt.Sprintf("Registering %s ...", form),
		"Uploading offering documents ...",
		"Configuring identity registry and KYC claims ...",
		fmt.Sprintf("Compiling %s token contract ...", standard),
		fmt.Sprintf("Deploying to %s ...", chain),
		"Minting initial supply ...",
		"Publishing investor portal ...",
		"Deployment complete.",
	}
}

// Deploy emits lines one at a time, each after delay. The channel is closed
// when every line was sent or ctx is done, whichever comes first.
func Deploy(ctx context.Context, lines []string, delay time.Duration) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		timer := time.NewTimer(delay)
		defer timer.Stop()
		for i, line := range lines {
			if i > 0 {
				timer.Reset(delay)
			}
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			select {
			case <-ctx.Done():
				return
			case out <- line:
			}
		}
	}()
	return out
}
