/*
 * options.go, part of gotheo.
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

package theo

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
	"github.com/joho/godotenv"
)

//Om formulas, i.e. ways of partitioning the transition charge among basis functions.
const (
	OmMulliken = 0 //(DS)_mn (SD)_mn
	OmLowdin   = 1 //((S^1/2 D S^1/2)_mn)^2
)

//DefaultPropList is the list of descriptors printed in summaries, unless
//something else is requested.
var DefaultPropList = []string{"Om", "POS", "PR", "CT", "COH", "CTnt", "PRNTO", "Z_HE", "RMSeh"}

//Options contains the settings for a transition density analysis. The field
//tags give the keys used in analysis input files (dens_ana.in).
type Options struct {
	//AtLists is the fragment partition. If not empty, it replaces the one in the Structure.
	AtLists   Partition `key:"at_lists"`
	OmFormula int       `key:"Om_formula" validate:"min=0,max=1"`
	CompNTOs  bool      `key:"comp_ntos"`
	//MaxNTOs is the maximum number of NTO pairs kept per state. 0 means no limit.
	MaxNTOs int `key:"max_ntos" validate:"min=0"`
	//MinNTO is the weight below which NTO pairs are considered numerical noise.
	MinNTO    float64 `key:"min_nto" validate:"gte=0,lt=1"`
	PrintNTOs int     `key:"print_ntos" validate:"min=0"`
	//KeepTDen keeps the TDM of each state in its record after the analysis.
	KeepTDen bool `key:"keep_tden"`
	//Negligible is the transition charge below which a state is negligible.
	Negligible float64 `key:"negligible" validate:"gt=0"`
	//CTLow and CTHigh are the CT numbers delimiting local, mixed and charge-transfer excitations.
	CTLow    float64  `key:"ct_low" validate:"gte=0,lte=1"`
	CTHigh   float64  `key:"ct_high" validate:"gte=0,lte=1,gtefield=CTLow"`
	PropList []string `key:"prop_list" validate:"min=1,dive,required"`
}

//DefaultOptions returns an Options with the default values.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.OmFormula = OmMulliken
	ret.CompNTOs = true
	ret.MinNTO = 1e-6
	ret.PrintNTOs = 3
	ret.Negligible = 1e-9
	ret.CTLow = 0.3
	ret.CTHigh = 0.7
	ret.PropList = append([]string{}, DefaultPropList...)
	return ret
}

var validate = validator.New()

//Validate checks the values of the options. It returns a ConfigurationError
//describing the first offending field, if any.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return WrapError(ConfigurationError, "Options.Validate", err)
	}
	return nil
}

//Apply returns a shallow copy of st using the options' fragment partition, if
//one was given. Otherwise st is returned.
func (o *Options) Apply(st *Structure) *Structure {
	if len(o.AtLists) == 0 {
		return st
	}
	ret := *st
	ret.Frags = o.AtLists
	return &ret
}

//ReadOptions reads analysis options from the file fname. See LoadOptions.
func ReadOptions(fname string) (*Options, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, WrapError(ConfigurationError, "ReadOptions", err)
	}
	defer f.Close()
	o, err := LoadOptions(f)
	if err != nil {
		return nil, errDecorate(err, "ReadOptions: "+fname)
	}
	return o, nil
}

//LoadOptions reads analysis options from r, a set of key=value lines, such as:
//
//	at_lists=[[1,2,3],[4,5,6]]
//	Om_formula=1
//	comp_ntos=True
//	prop_list=['Om','POS','PR','CT']
//
//Keys not given keep their default values, unknown keys are ignored. The resulting
//options are validated before being returned.
func LoadOptions(r io.Reader) (*Options, error) {
	caller := "LoadOptions"
	vals, err := godotenv.Parse(r)
	if err != nil {
		return nil, WrapError(ConfigurationError, caller, err)
	}
	o := DefaultOptions()
	for k, v := range vals {
		v = strings.TrimSpace(v)
		var err error
		switch k {
		case "at_lists":
			o.AtLists, err = ParseAtLists(v)
		case "Om_formula":
			o.OmFormula, err = strconv.Atoi(v)
		case "comp_ntos":
			o.CompNTOs, err = parseBool(v)
		case "max_ntos":
			o.MaxNTOs, err = strconv.Atoi(v)
		case "min_nto":
			o.MinNTO, err = strconv.ParseFloat(v, 64)
		case "print_ntos":
			o.PrintNTOs, err = strconv.Atoi(v)
		case "keep_tden":
			o.KeepTDen, err = parseBool(v)
		case "negligible":
			o.Negligible, err = strconv.ParseFloat(v, 64)
		case "ct_low":
			o.CTLow, err = strconv.ParseFloat(v, 64)
		case "ct_high":
			o.CTHigh, err = strconv.ParseFloat(v, 64)
		case "prop_list":
			o.PropList = parseList(v)
		default:
			logger.Debug("ignoring option", "key", k, "value", v)
		}
		if err != nil {
			return nil, NewError(ConfigurationError, caller, "invalid value %q for %s: %v", v, k, err)
		}
	}
	if err := o.Validate(); err != nil {
		return nil, errDecorate(err, caller)
	}
	return o, nil
}

//parseBool also understands the python spelling of booleans.
func parseBool(s string) (bool, error) {
	switch s {
	case "True":
		return true, nil
	case "False":
		return false, nil
	}
	return strconv.ParseBool(s)
}

//parseList reads python-like lists of strings: ['a', 'b'] or just a comma-separated list.
func parseList(s string) []string {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	ret := make([]string, 0)
	for _, v := range strings.Split(s, ",") {
		v = strings.Trim(strings.TrimSpace(v), `'"`)
		if v != "" {
			ret = append(ret, v)
		}
	}
	return ret
}
