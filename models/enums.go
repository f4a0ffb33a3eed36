// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// ProcessType is a firearms-registration process code
type ProcessType string

const (
	ProcessCRObter                           ProcessType = "CR_OBTER"
	ProcessCRRevalidar                       ProcessType = "CR_REVALIDAR"
	ProcessCRApostilar                       ProcessType = "CR_APOSTILAR"
	ProcessCRCancelar                        ProcessType = "CR_CANCELAR"
	ProcessAquisicaoArmaSolicitar            ProcessType = "AQUISICAO_ARMA_SOLICITAR"
	ProcessArmaRegistrar                     ProcessType = "ARMA_REGISTRAR"
	ProcessRegistroArmaRenovar               ProcessType = "REGISTRO_ARMA_RENOVAR"
	ProcessTransferenciaArmaCACSolicitar     ProcessType = "TRANSFERENCIA_ARMA_CAC_SOLICITAR"
	ProcessAlterarNivelAtirador              ProcessType = "ALTERAR_NIVEL_ATIRADOR"
	ProcessTransferenciaAcervoMesmoProp      ProcessType = "TRANSFERENCIA_ACERVO_MESMO_PROP"
	ProcessTransferenciaAcervoCACObter       ProcessType = "TRANSFERENCIA_ACERVO_CAC_OBTER"
	ProcessTransferenciaSIDPParaCACSolicitar ProcessType = "TRANSFERENCIA_SI_DP_PARA_CAC_SOLICITAR"
	ProcessTransferenciaSIDPParaCACObter     ProcessType = "TRANSFERENCIA_SI_DP_PARA_CAC_OBTER"
	ProcessTransferenciaCACParaSIDPSolicitar ProcessType = "TRANSFERENCIA_CAC_PARA_SI_DP_SOLICITAR"
	ProcessTransferenciaCACParaSIDPObter     ProcessType = "TRANSFERENCIA_CAC_PARA_SI_DP_OBTER"
	ProcessCRSegundaViaSolicitar             ProcessType = "CR_SEGUNDA_VIA_SOLICITAR"
	ProcessCRSegundaViaObter                 ProcessType = "CR_SEGUNDA_VIA_OBTER"
	ProcessRegistroArmaSegundaViaObter       ProcessType = "REGISTRO_ARMA_SEGUNDA_VIA_OBTER"
	ProcessGuiaTrafegoEspecialObter          ProcessType = "GUIA_TRÁFEGO_ESPECIAL_OBTER"
)

// ProcessTypes lists every accepted process code in display order
var ProcessTypes = []ProcessType{
	ProcessCRObter,
	ProcessCRRevalidar,
	ProcessCRApostilar,
	ProcessCRCancelar,
	ProcessAquisicaoArmaSolicitar,
	ProcessArmaRegistrar,
	ProcessRegistroArmaRenovar,
	ProcessTransferenciaArmaCACSolicitar,
	ProcessAlterarNivelAtirador,
	ProcessTransferenciaAcervoMesmoProp,
	ProcessTransferenciaAcervoCACObter,
	ProcessTransferenciaSIDPParaCACSolicitar,
	ProcessTransferenciaSIDPParaCACObter,
	ProcessTransferenciaCACParaSIDPSolicitar,
	ProcessTransferenciaCACParaSIDPObter,
	ProcessCRSegundaViaSolicitar,
	ProcessCRSegundaViaObter,
	ProcessRegistroArmaSegundaViaObter,
	ProcessGuiaTrafegoEspecialObter,
}

var processTypeLabels = map[ProcessType]string{
	ProcessCRObter:                           "Obter Certificado de Registro",
	ProcessCRRevalidar:                       "Revalidar Certificado de Registro",
	ProcessCRApostilar:                       "Apostilar Certificado de Registro",
	ProcessCRCancelar:                        "Cancelar Certificado de Registro",
	ProcessAquisicaoArmaSolicitar:            "Solicitar Aquisição de Arma",
	ProcessArmaRegistrar:                     "Registrar Arma de Fogo",
	ProcessRegistroArmaRenovar:               "Renovar Registro de Arma",
	ProcessTransferenciaArmaCACSolicitar:     "Solicitar Transferência de Arma (CAC)",
	ProcessAlterarNivelAtirador:              "Alterar Nível de Atirador",
	ProcessTransferenciaAcervoMesmoProp:      "Transferir entre Acervos do Mesmo Proprietário",
	ProcessTransferenciaAcervoCACObter:       "Transferir entre Acervos (CAC)",
	ProcessTransferenciaSIDPParaCACSolicitar: "Solicitar Transferência para SINARM-CAC",
	ProcessTransferenciaSIDPParaCACObter:     "Obter Transferência para SINARM-CAC",
	ProcessTransferenciaCACParaSIDPSolicitar: "Solicitar Transferência do SINARM-CAC",
	ProcessTransferenciaCACParaSIDPObter:     "Obter Transferência do SINARM-CAC",
	ProcessCRSegundaViaSolicitar:             "Solicitar 2ª Via do Certificado de Registro",
	ProcessCRSegundaViaObter:                 "Obter 2ª Via do Certificado de Registro",
	ProcessRegistroArmaSegundaViaObter:       "Obter 2ª Via do Registro de Arma",
	ProcessGuiaTrafegoEspecialObter:          "Obter Guia de Tráfego Especial",
}

// Valid reports whether p is a known process code. No case folding or
// trimming is applied.
func (p ProcessType) Valid() bool {
	_, ok := processTypeLabels[p]
	return ok
}

// Label returns the pt-BR description, or the raw code when unknown
func (p ProcessType) Label() string {
	if label, ok := processTypeLabels[p]; ok {
		return label
	}
	return string(p)
}

// Result is the outcome of a process
type Result string

const (
	ResultDeferido   Result = "DEFERIDO"
	ResultIndeferido Result = "INDEFERIDO"
)

var Results = []Result{ResultDeferido, ResultIndeferido}

func (r Result) Valid() bool {
	return r == ResultDeferido || r == ResultIndeferido
}

func (r Result) Label() string {
	switch r {
	case ResultDeferido:
		return "Deferido"
	case ResultIndeferido:
		return "Indeferido"
	}
	return string(r)
}
