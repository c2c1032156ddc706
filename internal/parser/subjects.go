package parser

import "exam-ingest/internal/domain"

type subjectKeywords struct {
	subject  string
	keywords []string
}

// subjectTable is scored in order; on a tie the earlier subject wins.
var subjectTable = []subjectKeywords{
	{domain.SubjectMathematics, []string{
		"equação", "função", "geometria", "trigonometria", "logaritmo", "probabilidade",
		"matriz", "vetor", "integral", "derivada", "progressão", "estatística", "polinômio",
		"inequação", "circunferência", "parábola", "elipse", "hipérbole", "combinação",
		"permutação", "fatorial", "binômio", "sequência", "razão", "proporção", "porcentagem",
		"juros", "área", "volume", "perímetro", "triângulo", "quadrado", "retângulo", "círculo",
	}},
	{domain.SubjectPhysics, []string{
		"velocidade", "aceleração", "força", "energia", "potência", "trabalho", "onda", "frequência",
		"resistência", "tensão", "corrente", "campo magnético", "campo elétrico", "temperatura",
		"pressão", "volume", "termodinâmica", "óptica", "refração", "reflexão", "lei de newton",
		"gravitação", "movimento", "colisão", "impulso", "momento", "calor", "entropia", "elétron",
		"fóton", "quântica", "relatividade", "circuito", "transformador",
	}},
	{domain.SubjectChemistry, []string{
		"reação", "mol", "átomo", "molécula", "elemento", "tabela periódica", "ácido", "base",
		"sal", "óxido", "ph", "oxidação", "redução", "orgânica", "inorgânica", "polímero",
		"combustão", "estequiometria", "solução", "concentração", "titulação", "eletrólise",
		"ligação covalente", "ligação iônica", "isômero", "alqueno", "alcano", "álcool", "aldeído",
		"cetona", "éster", "ácido carboxílico", "amina", "amida", "carbono", "hidrogênio",
	}},
	{domain.SubjectBiology, []string{
		"célula", "dna", "rna", "proteína", "enzima", "fotossíntese", "respiração celular",
		"mitose", "meiose", "genética", "evolução", "ecologia", "bioma", "espécie", "organismo",
		"vírus", "bactéria", "fungo", "vegetal", "animal", "tecido", "órgão", "sistema",
		"imunidade", "hormônio", "neurônio", "sinapse", "herança", "mutação", "seleção natural",
		"adaptação", "parasita", "simbiose", "cadeia alimentar", "nutriente",
	}},
	{domain.SubjectHistory, []string{
		"revolução", "guerra", "império", "colônia", "república", "democracia", "ditadura",
		"feudalismo", "capitalismo", "socialismo", "nazismo", "fascismo", "independência",
		"escravidão", "abolição", "iluminismo", "renascimento", "reforma", "contrarreforma",
		"imperialismo", "colonialismo", "tratado", "constituição", "presidente", "rei", "rainha",
		"época", "século", "período", "movimento", "revolta", "crise",
	}},
	{domain.SubjectGeography, []string{
		"bioma", "clima", "relevo", "hidrografia", "urbanização", "população", "migração",
		"globalização", "geopolítica", "fronteira", "território", "continente", "oceano",
		"latitude", "longitude", "mapa", "cartografia", "desenvolvimento", "sustentável",
		"desertificação", "desmatamento", "aquecimento global", "recursos naturais",
		"indústria", "agricultura", "agronegócio", "exportação", "importação",
	}},
	{domain.SubjectPortuguese, []string{
		"texto", "linguagem", "narrador", "personagem", "enunciado", "oração", "sujeito",
		"predicado", "verbo", "substantivo", "adjetivo", "advérbio", "conjunção", "preposição",
		"pronome", "artigo", "numeral", "interjeição", "coesão", "coerência", "argumento",
		"gênero textual", "dissertação", "crônica", "poema", "conto", "romance", "figura de linguagem",
		"metáfora", "hipérbole", "ironia", "metonímia", "norma culta", "concordância", "regência",
	}},
	{domain.SubjectEnglish, []string{
		"text", "read", "according", "passage", "author", "meaning", "sentence", "grammar",
		"tense", "verb", "noun", "adjective", "adverb", "preposition", "conjunction",
		"vocabulary", "comprehension", "translate", "english", "language", "speaker",
		"past", "present", "future", "perfect", "simple", "continuous", "passive", "active",
	}},
}

type subjectRange struct {
	from, to int
	subject  string
}

// rangeTable maps question numbers to subjects for exam types with a fixed booklet layout.
var rangeTable = map[domain.ExamType][]subjectRange{
	domain.ExamTypeENEMDay1: {
		{1, 5, domain.SubjectEnglish},
		{6, 10, domain.SubjectEnglish},
		{11, 45, domain.SubjectPortuguese},
		{46, 90, domain.SubjectHistory},
	},
	domain.ExamTypeENEMDay2: {
		{91, 135, domain.SubjectNaturalSciences},
		{136, 180, domain.SubjectMathematics},
	},
	domain.ExamTypeFUVEST1: {
		{1, 90, domain.SubjectMixed},
	},
	domain.ExamTypeUNICAMP1: {
		{1, 72, domain.SubjectMixed},
	},
}

// SubjectByRange returns the subject of the first interval containing n, or "" when no
// interval matches or the interval is mixed.
func SubjectByRange(n int, t domain.ExamType) string {
	for _, r := range rangeTable[t] {
		if n >= r.from && n <= r.to {
			if r.subject == domain.SubjectMixed {
				return ""
			}
			return r.subject
		}
	}
	return ""
}
