/*
 * uks.go, part of gotheo.
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package tden

import (
	theo "github.com/rmera/gotheo"
)

//UKSResult contains the results of the analysis of an unrestricted calculation.
type UKSResult struct {
	Alpha *Session //the alpha channel
	Total *Session //the spin-summed analysis
	//Reports for the population of the alpha and beta channels.
	AlphaReport *Report
	BetaReport  *Report
	//Summaries of the alpha and beta channels, taken before they were combined.
	AlphaSummary string
	BetaSummary  string
}

//AnalyzeUKS analyzes the alpha and beta transition densities of an unrestricted calculation,
//and combines them. Each channel uses the structure of its own source. The summary of each
//channel, and that of the spin-summed analysis, are logged at the Info level.
func AnalyzeUKS(alpha, beta theo.DensitySource, o *theo.Options) (*UKSResult, error) {
	caller := "AnalyzeUKS"
	ret := new(UKSResult)
	log := theo.Logger()
	channel := func(spin theo.Spin, src theo.DensitySource) (*Session, *Report, string, error) {
		S, err := NewSession(spin, src.Structure(), o)
		if err != nil {
			return nil, nil, "", err
		}
		rep, err := S.Populate(src)
		if err != nil {
			return nil, rep, "", err
		}
		sum := S.Summary()
		log.Info("channel analyzed", "spin", spin, "summary", "\n"+sum)
		return S, rep, sum, nil
	}
	var err error
	var b *Session
	ret.Alpha, ret.AlphaReport, ret.AlphaSummary, err = channel(theo.Alpha, alpha)
	if err != nil {
		return ret, errDecorate(err, caller+": alpha")
	}
	b, ret.BetaReport, ret.BetaSummary, err = channel(theo.Beta, beta)
	if err != nil {
		return ret, errDecorate(err, caller+": beta")
	}
	ret.Total, err = Combine(ret.Alpha, b)
	if err != nil {
		return ret, errDecorate(err, caller)
	}
	log.Info("spin channels combined", "summary", "\n"+ret.Total.Summary())
	return ret, nil
}
