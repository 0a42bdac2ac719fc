package extractor

// Mensagens exibidas ao usuário quando a extração falha
const (
	MsgInvalidURL        = "URL inválida. Verifique o formato e tente novamente."
	MsgHTTPStatus        = "Não foi possível acessar a página (HTTP %d). Verifique o link ou cole o texto diretamente."
	MsgNotHTML           = "O link não aponta para uma página HTML. Cole o texto da página diretamente."
	MsgTimeout           = "Tempo esgotado ao acessar a página (%ds). Cole o texto diretamente."
	MsgFetchError        = "Erro ao acessar a página: %s. Cole o texto diretamente."
	MsgRobotsDisallowed  = "O site não permite a leitura automática desta página. Cole o texto diretamente."
	MsgInsufficient      = "Inconclusivo: não foi possível extrair conteúdo suficiente. Cole o texto da página."
	MsgYouTubeNoID       = "Não foi possível identificar o ID do vídeo no link do YouTube."
	MsgYouTubeNoCaptions = "Este vídeo não possui legendas públicas disponíveis. Não é possível analisar sem texto."
	MsgYouTubeTechnical  = "Erro técnico ao obter transcrição do YouTube (%s). Tente novamente em instantes."
	MsgYouTubeTooShort   = "Este vídeo possui legenda muito curta para uma análise confiável."
	MsgAudioInvalid      = "Áudio inválido. Envie o arquivo novamente."
	MsgAudioFailed       = "Não foi possível transcrever o áudio. Tente novamente ou envie o texto."
	MsgAudioTooShort     = "O áudio não contém fala suficiente para uma análise."
)

// Avisos anexados ao resultado da extração
const (
	WarnTruncated           = "Conteúdo truncado em 10.000 caracteres."
	WarnHeuristic           = "Conteúdo extraído com heurística (pode conter ruído)."
	WarnReadabilityFailed   = "Readability falhou; tentando fallback com heurística."
	WarnTranscriptTruncated = "Transcrição truncada em 10.000 caracteres."
	WarnAlternateLanguage   = "Transcrição obtida em idioma alternativo (não pt-BR)."
	WarnYouTubeNoTranscript = "youtube_no_public_transcript"
	WarnYouTubeError        = "youtube_extraction_error"
	WarnYouTubeTooShort     = "youtube_transcript_too_short"
	WarnAudioTranscribed    = "Conteúdo analisado a partir da transcrição automática do áudio."
)
